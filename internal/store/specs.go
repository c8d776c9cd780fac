package store

// Upsert specs for every ingested entity. AlwaysUpdate carries the foreign
// keys and natural keys that are overwritten on every merge; all other
// columns follow null-preserving merge semantics.
var (
	FarmerSpec = UpsertSpec{
		Table:        "farmers",
		EntityLabel:  "farmer",
		KeyColumn:    "commcare_case_id",
		AlwaysUpdate: []string{"farmer_group_id", "household_id", "commcare_case_id", "tns_id"},
	}

	HouseholdSpec = UpsertSpec{
		Table:        "households",
		EntityLabel:  "household",
		KeyColumn:    "tns_id",
		AlwaysUpdate: []string{"farmer_group_id", "tns_id"},
	}

	// Training sessions are created by the program office ahead of time;
	// attendance forms may only ever update them.
	TrainingSessionSpec = UpsertSpec{
		Table:        "training_sessions",
		EntityLabel:  "training session",
		KeyColumn:    "commcare_case_id",
		AlwaysUpdate: []string{"trainer_id", "module_id", "farmer_group_id", "commcare_case_id"},
		Strict:       true,
	}

	AttendanceSpec = UpsertSpec{
		Table:        "attendances",
		EntityLabel:  "attendance",
		KeyColumn:    "submission_id",
		AlwaysUpdate: []string{"training_session_id", "farmer_id", "submission_id"},
	}

	FarmVisitSpec = UpsertSpec{
		Table:       "farm_visits",
		EntityLabel: "farm visit",
		KeyColumn:   "submission_id",
		AlwaysUpdate: []string{
			"visited_primary_farmer_id",
			"submission_id",
			"visited_secondary_farmer_id",
			"visited_household_id",
			"training_session_id",
			"visiting_staff_id",
		},
	}

	FVBestPracticeSpec = UpsertSpec{
		Table:        "fv_best_practices",
		EntityLabel:  "farm visit best practice",
		KeyColumn:    "submission_id",
		AlwaysUpdate: []string{"submission_id", "farm_visit_id"},
	}

	FVBestPracticeAnswerSpec = UpsertSpec{
		Table:        "fv_best_practice_answers",
		EntityLabel:  "farm visit best practice answer",
		KeyColumn:    "submission_id",
		AlwaysUpdate: []string{"submission_id", "fv_best_practice_id"},
	}

	FarmSpec = UpsertSpec{
		Table:        "farms",
		EntityLabel:  "farm",
		KeyColumn:    "submission_id",
		AlwaysUpdate: []string{"submission_id"},
	}

	CoffeeVarietySpec = UpsertSpec{
		Table:        "coffee_varieties",
		EntityLabel:  "coffee variety",
		KeyColumn:    "submission_id",
		AlwaysUpdate: []string{"submission_id"},
	}

	ObservationSpec = UpsertSpec{
		Table:        "observations",
		EntityLabel:  "observation",
		KeyColumn:    "submission_id",
		AlwaysUpdate: []string{"farmer_group_id", "submission_id", "observer_id"},
	}

	ObservationResultSpec = UpsertSpec{
		Table:        "observation_results",
		EntityLabel:  "observation result",
		KeyColumn:    "submission_id",
		AlwaysUpdate: []string{"submission_id"},
	}

	CheckSpec = UpsertSpec{
		Table:       "checks",
		EntityLabel: "check",
		KeyColumn:   "submission_id",
		AlwaysUpdate: []string{
			"submission_id",
			"farmer_id",
			"checker_id",
			"observation_id",
			"farm_visit_id",
			"training_session_id",
		},
	}

	ImageSpec = UpsertSpec{
		Table:        "images",
		EntityLabel:  "image",
		KeyColumn:    "submission_id",
		AlwaysUpdate: []string{"submission_id"},
	}

	WetmillSpec = UpsertSpec{
		Table:        "wetmills",
		EntityLabel:  "wet mill",
		KeyColumn:    "commcare_case_id",
		AlwaysUpdate: []string{"commcare_case_id", "user_id"},
	}

	WetmillVisitSpec = UpsertSpec{
		Table:        "wetmill_visits",
		EntityLabel:  "wet mill visit",
		KeyColumn:    "submission_id",
		AlwaysUpdate: []string{"submission_id", "user_id"},
	}

	WVSurveyResponseSpec = UpsertSpec{
		Table:        "wv_survey_responses",
		EntityLabel:  "wet mill survey response",
		KeyColumn:    "submission_id",
		AlwaysUpdate: []string{"submission_id"},
	}

	WVSurveyQuestionResponseSpec = UpsertSpec{
		Table:        "wv_survey_question_responses",
		EntityLabel:  "wet mill survey question response",
		KeyColumn:    "submission_id",
		AlwaysUpdate: []string{"submission_id"},
	}
)

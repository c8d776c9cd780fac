package transform

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/TechnoServe/pima-integration/internal/mapping"
)

// SurveyTransformFunc normalizes one wet mill visit survey block before it is
// exploded into question responses. urlString is the attachment URL prefix for
// the submission; form is the full form block for survey type checks.
type SurveyTransformFunc func(survey Map, urlString string, form Map) Map

// SurveyTransformations dispatches by survey name. Only surveys in
// mapping.AllowedSurveys carry an entry.
var SurveyTransformations = map[string]SurveyTransformFunc{
	"cpqi":                                TransformCPQI,
	"employees":                           TransformEmployees,
	"financials":                          TransformFinancials,
	"infrastructure":                      TransformInfrastructure,
	"kpis":                                TransformKPIs,
	"manager_needs_assessment":            TransformManagerNeedsAssessment,
	"wet_mill_training":                   TransformWetmillTraining,
	"waste_water_management":              TransformWasteWaterManagement,
	"water_and_energy_use":                TransformWaterAndEnergyUse,
	"routine_visit":                       TransformRoutineVisit,
	"cherry_weekly_price":                 TransformCherryWeeklyPrice,
	"gender_equitable_business_practices": TransformGenderEquitableBusinessPractices,
}

func copyMap(m Map) Map {
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copySection(m Map, key string) Map {
	section := m.Map(key)
	if section == nil {
		return nil
	}
	return copyMap(section)
}

// photoURL prefixes an attachment file name with the submission's attachment
// URL, nil when no photo was taken.
func photoURL(urlString, name string) any {
	if name == "" {
		return nil
	}
	return urlString + "/" + name
}

func yesNo(v string) string {
	if v == "1" {
		return "yes"
	}
	return "no"
}

// multiAny maps a space separated multiselect through a code table into a
// list value for the question explosion.
func multiAny(value string, codes map[string]string) []any {
	mapped := mapping.MapMulti(value, codes)
	out := make([]any, 0, len(mapped))
	for _, text := range mapped {
		out = append(out, text)
	}
	return out
}

func TransformWaterAndEnergyUse(survey Map, urlString string, form Map) Map {
	out := copyMap(survey)

	if water := copySection(out, "water_usage"); water != nil {
		if method := water.String("what_method_is_used_to_measure_water_use"); method != "" {
			water["what_method_is_used_to_measure_water_use"] = mapping.MapCode(method, mapping.WaterUseMethodText, method)
		}

		efforts := multiAny(water.String("are_there_any_efforts_going_on_to_reduce_water_consumption"), mapping.WaterUseEffortText)
		if other := water.String("please_specify_the_other_efforts_going_on_to_reduce_the_water_consumption"); other != "" {
			efforts = append(efforts, other)
		}
		water["are_there_any_efforts_going_on_to_reduce_water_consumption"] = efforts

		water["is_there_a_record_book"] = yesNo(water.String("is_there_a_record_book"))
		water["photo_fo_the_office_records"] = photoURL(urlString, water.String("photo_fo_the_office_records"))
		water["photo_of_water_meter"] = photoURL(urlString, water.String("photo_of_water_meter"))
		out["water_usage"] = map[string]any(water)
	}

	if energy := copySection(out, "energy_use"); energy != nil {
		energy["which_energy_source_is_used_at_the_wet_mill"] = multiAny(
			energy.String("which_energy_source_is_used_at_the_wet_mill"), mapping.EnergyUseSourceText)
		energy["is_there_an_energy_record_book_to_track_energy"] = yesNo(energy.String("is_there_an_energy_record_book_to_track_energy"))

		for _, field := range []string{
			"photo_of_the_electric_meter",
			"photo_of_the_diesel_generator",
			"photo_of_the_solar_panels",
			"photo_of_energy_record_book",
		} {
			energy[field] = photoURL(urlString, energy.String(field))
		}
		out["energy_use"] = map[string]any(energy)
	}

	return out
}

func TransformWasteWaterManagement(survey Map, urlString string, form Map) Map {
	out := copyMap(survey)

	if lagoons := copySection(out, "lagoons"); lagoons != nil {
		if mat := lagoons.String("material"); mat != "" {
			lagoons["material"] = mapping.MapCode(mat, mapping.LagoonMaterialText, mat)
		}
		if pic := lagoons.String("photo"); pic != "" {
			lagoons["photo"] = urlString + "/" + pic
		}
		out["lagoons"] = map[string]any(lagoons)
	}

	if vet := copySection(out, "vetiver_wetland"); vet != nil {
		if tw := vet.String("type_of_wetland"); tw != "" {
			vet["type_of_wetland"] = mapping.MapCode(tw, mapping.VetiverTypeText, tw)
		}
		vet["maintenance_done"] = multiAny(vet.String("maintenance_done"), mapping.VetiverMaintenanceText)
		vet["photo"] = photoURL(urlString, vet.String("photo"))
		out["vetiver_wetland"] = map[string]any(vet)
	}

	if advice := copySection(out, "advice_to_wet_mill"); advice != nil {
		advice["advice_type"] = multiAny(advice.String("advice_type"), mapping.WasteWaterAdviceText)
		out["advice_to_wet_mill"] = map[string]any(advice)
	}

	if pulp := copySection(out, "pulp_separator"); pulp != nil {
		pulp["waste_water_management_methods"] = multiAny(pulp.String("waste_water_management_methods"), mapping.WasteWaterMethodText)
		pulp["how_is_the_pulp_separated"] = multiAny(pulp.String("how_is_the_pulp_separated"), mapping.PulpSeparationText)
		out["pulp_separator"] = map[string]any(pulp)
	}

	return out
}

func TransformWetmillTraining(survey Map, urlString string, form Map) Map {
	// Ethiopia form builds up to 54 used the original topic list.
	version := "new"
	if form.String("survey_type") == "Wet Mill Visit - ET" {
		if v, err := strconv.Atoi(strings.TrimSpace(form.String("@version"))); err == nil && v <= 54 {
			version = "old"
		}
	}

	out := copyMap(survey)
	delete(out, "training_topic_category")

	if topic := out.String("training_topic"); topic != "" {
		out["training_topic"] = mapping.MapCode(topic, mapping.TrainingTopicText[version], topic)
	}
	if status := out.String("training_status"); status != "" {
		out["training_status"] = mapping.MapCode(status, mapping.TrainingStatusText, status)
	}
	out["picture_of_trainees_group"] = photoURL(urlString, out.String("picture_of_trainees_group"))
	out["picture_of_training_attendance_form"] = photoURL(urlString, out.String("picture_of_training_attendance_form"))

	return out
}

func TransformManagerNeedsAssessment(survey Map, urlString string, form Map) Map {
	out := copyMap(survey)

	if bo := copySection(out, "business_and_operations"); bo != nil {
		bo["documents"] = multiAny(bo.String("documents"), mapping.ManagerDocsText[form.String("survey_type")])
		if csp := bo.String("coffee_sale_period"); csp != "" {
			bo["coffee_sale_period"] = mapping.MapCode(csp, mapping.CoffeeSalePeriodText, csp)
		}
		bo["primary_buyer_additional_services_yn"] = multiAny(
			bo.String("primary_buyer_additional_services_yn"), mapping.PrimaryBuyerServicesText)

		// Revenue distribution is one level deeper than the rest; flatten it.
		if dist := bo.Map("distribution_of_revenues"); dist != nil {
			for dk, dv := range dist {
				if strings.HasSuffix(dk, "_label") {
					continue
				}
				bo[dk] = dv
			}
			delete(bo, "distribution_of_revenues")
		}
		out["business_and_operations"] = map[string]any(bo)
	}

	if banking := copySection(out, "banking"); banking != nil {
		if chal := banking.String("significant_challenges_accessing_loans"); chal != "" {
			banking["significant_challenges_accessing_loans"] = mapping.MapCode(chal, mapping.ManagerBankingText, chal)
		}
		out["banking"] = map[string]any(banking)
	}

	if tech := copySection(out, "technology"); tech != nil {
		tech["information_captured"] = multiAny(tech.String("information_captured"), mapping.TechnologyInfoText)
		out["technology"] = map[string]any(tech)
	}

	if ops := copySection(out, "operations"); ops != nil {
		delete(ops, "biggest_problems")
		out["operations"] = map[string]any(ops)
	}

	pom := copySection(out, "perspective_of_manager")
	if pom == nil {
		pom = Map{}
	}
	for k, v := range out.Map("perspective_of_manager_extra") {
		pom[k] = v
	}
	delete(pom, "coffee_station_issues")
	delete(out, "perspective_of_manager_extra")
	out["perspective_of_manager"] = map[string]any(pom)

	return out
}

func TransformKPIs(survey Map, urlString string, form Map) Map {
	out := copyMap(survey)
	if pic := out.String("photo_of_cherry_receipts"); pic != "" {
		out["photo_of_cherry_receipts"] = urlString + "/" + pic
	}
	if fpm := out.String("farmer_payment_method"); fpm != "" {
		out["farmer_payment_method"] = mapping.MapCode(fpm, mapping.FarmerPaymentMethodText, fpm)
	}
	return out
}

func TransformInfrastructure(survey Map, urlString string, form Map) Map {
	out := copyMap(survey)

	if code := out.String("main_water_source"); code != "" {
		out["main_water_source"] = mapping.MapCode(code, mapping.InfrastructureWaterSourceText, code)
	}

	// The repair checklist lists every piece of equipment; anything flagged as
	// needing repair drops out of the good state list.
	needsRepair := map[string]bool{}
	for _, c := range SplitMultiselect(out.String("which_of_the_following_needs_repair_check_all_that_apply")) {
		needsRepair[c] = true
	}
	if good := out.String("are_the_following_in_good_state_of_repair"); good != "" {
		var texts []any
		for _, c := range SplitMultiselect(good) {
			if text, ok := mapping.InfrastructureRepairText[c]; ok && !needsRepair[c] {
				texts = append(texts, text)
			}
		}
		out["are_the_following_in_good_state_of_repair"] = texts
	}
	if out.Has("which_of_the_following_needs_repair_check_all_that_apply") {
		out["which_of_the_following_needs_repair"] = multiAny(
			out.String("which_of_the_following_needs_repair_check_all_that_apply"), mapping.InfrastructureRepairText)
	}

	if brand := out.String("pulping_machine_brand"); brand != "" {
		out["pulping_machine_brand"] = mapping.MapCode(brand, mapping.InfrastructurePulpingBrandText, brand)
	}
	if ptype := out.String("pulping_machine_type"); ptype != "" {
		out["pulping_machine_type"] = mapping.MapCode(ptype, mapping.InfrastructurePulpingTypeText, ptype)
	}
	if net := out.String("network_coverage"); net != "" {
		out["network_coverage"] = mapping.MapCode(net, mapping.InfrastructureNetworkCoverageText, net)
	}

	return out
}

// Scored process check questions by section. Answers are "1"/"0" flags.
var cpqiSectionFields = map[string][]string{
	"cherry_reception": {"cherry_sorting", "cherry_weighing_essentials", "quality_cherry_delivery"},
	"pulping":          {"machine_calibration", "machine_cleanliness", "timely_cherry_pulping", "water_source_cleanliness"},
	"drying":           {"bean_moisture_measurement", "covering_coffee", "drying_table_bean_depth", "drying_table_flatness", "parchment_sorting"},
	"fermentation":     {"fermentation_monitoring", "fermentation_tank_cleanliness"},
	"storage":          {"orderly_store_registry", "store_cleanliness"},
	"washing":          {"washing_channel_cleanliness", "washing_monitoring"},
}

func TransformCPQI(survey Map, urlString string, form Map) Map {
	out := copyMap(survey)
	for sectionName, fields := range cpqiSectionFields {
		section := copySection(out, sectionName)
		if section == nil {
			continue
		}
		for _, field := range fields {
			if val := section.String(field); val == "1" || val == "0" {
				section[field] = yesNo(val)
			}
		}
		out[sectionName] = map[string]any(section)
	}
	return out
}

func TransformFinancials(survey Map, urlString string, form Map) Map {
	var clean func(m Map) Map
	clean = func(m Map) Map {
		out := Map{}
		for k, v := range m {
			if k == "survey_6___financials" || strings.HasSuffix(k, "_label") {
				continue
			}
			if child, ok := v.(map[string]any); ok {
				out[k] = map[string]any(clean(Map(child)))
			} else {
				out[k] = v
			}
		}
		return out
	}
	return clean(survey)
}

func TransformEmployees(survey Map, urlString string, form Map) Map {
	namedRoles := map[string]bool{
		"accountant":            true,
		"sustainability_officer": true,
		"community_manager":     true,
		"certification_officer": true,
		"machine_operator":      true,
	}

	out := Map{}
	for key, val := range survey {
		raw := Stringify(val)
		if namedRoles[key] && (raw == "1" || raw == "0") {
			out[key] = yesNo(raw)
			continue
		}
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			out[key] = n
		} else {
			out[key] = val
		}
	}
	return out
}

func TransformRoutineVisit(survey Map, urlString string, form Map) Map {
	out := Map{}

	if survey.String("purpose_of_visit") == "99" {
		out["purpose_of_visit"] = fmt.Sprintf("Other: %s", survey.String("specify_the_purpose_of_visit"))
	} else {
		out["purpose_of_visit"] = mapping.PurposeOfVisitText[survey.String("purpose_of_visit")]
	}

	out["summary_of_activity"] = survey.Value("summary_of_activity")
	out["picture_of_activity"] = photoURL(urlString, survey.String("picture_of_activity"))
	out["general_feedback"] = survey.Value("general_feedback")
	return out
}

func TransformCherryWeeklyPrice(survey Map, urlString string, form Map) Map {
	out := Map{}

	date := survey.String("cherry_week")
	out["date"] = survey.Value("cherry_week")
	if t, err := time.Parse("2006-01-02", date); err == nil {
		_, week := t.ISOWeek()
		out["cherry_week"] = strconv.Itoa(week)
	} else {
		out["cherry_week"] = nil
	}

	out["cherry_price"] = survey.Value("cherry_price")
	out["general_feedback"] = survey.Value("general_feedback")
	return out
}

func TransformGenderEquitableBusinessPractices(survey Map, urlString string, form Map) Map {
	// The assessment nests one structural level deeper than other surveys;
	// fold the second level away so questions sit two levels deep at most.
	clean := func(m Map) Map {
		out := Map{}
		for k, v := range m {
			if k == "survey_12___gender_equitable_business_practices" || strings.HasSuffix(k, "_label") || k == "table" {
				continue
			}
			child, ok := v.(map[string]any)
			if !ok {
				out[k] = v
				continue
			}
			for subKey, subVal := range child {
				if grandchild, ok := subVal.(map[string]any); ok {
					out[k+"-"+subKey] = grandchild
				} else {
					out[subKey] = subVal
				}
			}
		}
		return out
	}

	cleaned := clean(survey.Map("assessment_form"))
	for k, v := range clean(survey.Map("action_plan")) {
		cleaned[k] = v
	}
	cleaned["general_feedback"] = survey.Value("general_feedback")

	expandYN := func(section Map, yes, no string) map[string]any {
		out := copyMap(section)
		for k, v := range out {
			switch v {
			case "y":
				out[k] = yes
			case "n":
				out[k] = no
			}
		}
		return map[string]any(out)
	}

	for k, v := range cleaned {
		section, ok := v.(map[string]any)
		if ok {
			switch {
			case strings.Contains(k, "delivers_meetings_and_training_in_ways_women_and_men_prefer"):
				cleaned[k] = expandYN(Map(section), "Yes, most of the time", "No, rarely or never")
			case strings.Contains(k, "delivers_resources_and_services_women_and_men_need"):
				cleaned[k] = expandYN(Map(section), "Equal to or more than 40 percent", "Less than 40 percent")
			default:
				cleaned[k] = expandYN(Map(section), "Yes", "No")
			}
			continue
		}
		switch v {
		case "y":
			cleaned[k] = "Yes"
		case "n":
			cleaned[k] = "No"
		}
	}

	return cleaned
}

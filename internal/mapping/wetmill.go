package mapping

import "strings"

// Wet mill registration code maps.
var (
	ExportingStatusText = map[string]string{
		"1": "Exporter",
		"2": "Non exporter",
	}

	VerticalIntegrationText = map[string]string{
		"1": "Yes",
		"0": "No",
	}

	ManagerRoleText = map[string]map[string]string{
		"Wet Mill Registration - ET": {"1": "General manager", "2": "Site/factory manager"},
		"Wet Mill Registration - BU": {"1": "General manager", "2": "Site/factory manager"},
		"Wet Mill Registration - KE": {
			"1": "Cooperative board of management",
			"2": "CEO/Secretary Manger",
			"3": "Factory/Wet Mill Manager",
		},
	}

	WetMillStatusText = map[string]map[string]string{
		"Wet Mill Registration - ET": {"1": "Cooperative", "2": "Private"},
		"Wet Mill Registration - KE": {"1": "Cooperative", "2": "Estate"},
	}
)

// Wet mill visit survey code maps.
var (
	InfrastructureWaterSourceText = map[string]string{
		"1": "River",
		"2": "Dam",
		"3": "Water pan",
		"4": "Piped system (local municipality)",
		"5": "Borehole",
		"6": "Spring",
		"7": "Roof catchment (rainwater)",
	}

	InfrastructureRepairText = map[string]string{
		"1":  "Constant, clean source of water",
		"2":  "Water circulation and/or treatment",
		"3":  "Water meter for measurement",
		"4":  "Floatation tank",
		"5":  "Cherry reception hopper",
		"6":  "Fermentation tanks",
		"7":  "Grading channels",
		"8":  "Pulp hopper",
		"9":  "General mills area clean and orderly",
		"10": "Drying tables in a good state of repair",
		"11": "Storage area clean",
		"12": "Weighing scale is calibrated",
		"13": "Pulp machine calibrated and oiled",
		"14": "Moisture meter, thermometer, hygrometer",
		"15": "Cherry purchasing receipts in stock",
		"16": "Covering materials available",
		"0":  "None",
	}

	InfrastructurePulpingBrandText = map[string]string{
		"1": "Penagos",
		"2": "Mckinnon",
		"3": "Bendal",
		"4": "Pinhalense",
		"5": "Pre-agard",
		"6": "Agard",
		"7": "JM Estrada",
		"8": "Pallin & Alvis",
		"9": "Marshall Fowler",
	}

	InfrastructurePulpingTypeText    = map[string]string{"1": "Disc", "2": "Drum", "3": "Scree"}
	InfrastructureNetworkCoverageText = map[string]string{"1": "2G", "2": "3G", "3": "4G"}

	ManagerDocsText = map[string]map[string]string{
		"Wet Mill Visit - ET": {
			"1": "Registration license",
			"2": "Tax number",
			"3": "Production or operational license for current year",
			"4": "Export license/number",
			"0": "None",
		},
		"Wet Mill Visit - KE": {
			"1": "Tax number",
			"2": "Cooperative registration with the ministry of cooperatives",
			"3": "Wet mill operation permit from the county",
			"4": "County business permit",
			"0": "None",
		},
		"Wet Mill Visit - BU": {
			"1": "Registration license",
			"2": "Tax number",
			"3": "Production or operational license for current year",
			"4": "Export license/number",
			"0": "None",
		},
	}

	CoffeeSalePeriodText = map[string]string{
		"1": "Before the season, in order to access working capital",
		"2": "Late in the harvest season, as coffee accumulates in the warehouse",
		"3": "After the harvest season",
	}

	PrimaryBuyerServicesText = map[string]string{
		"1": "Working capital to purchase coffee",
		"2": "Agronomic support",
		"3": "Processing training/quality support",
		"0": "No additional services offered",
	}

	ManagerBankingText = map[string]string{
		"1": "No significant challenges accessing loans",
		"2": "Lack of physical assets for bank collateral",
		"3": "High interest rates",
		"4": "Need for existing purchase order from coffee buyer",
		"5": "Poor performance of coffee washing station",
		"6": "Lack of financial statements and information needed for financial institutions",
	}

	TechnologyInfoText = map[string]string{
		"1": "Farmer names (e.g., Excel list of farmers)",
		"2": "Coffee volumes delivered to the coffee washing station",
		"3": "Accounting (e.g., regular entries and reconciliation in Excel or other tool)",
		"4": "Traceability (e.g., tracking daily batches and coffee washing station operations)",
		"5": "Farmer payments (e.g., digital record of farmer payments)",
		"6": "Do not use any digital tool",
	}

	TrainingTopicText = map[string]map[string]string{
		"old": {
			"1":  "Environmental Responsibility",
			"2":  "Social Responsibility and Ethics",
			"3":  "Gender Training",
			"4":  "Occupational Health and Safety",
			"5":  "Sustainability Standards Overview",
			"6":  "Finance and Bookkeeping",
			"7":  "Post-Harvest Coffee Processing and Quality Training",
			"8":  "TASQ Overview ",
			"9":  "Inclusive Training",
			"10": "Gender Training",
			"11": "Regenerative Agriculture",
			"12": "Farm-level Traceability",
			"13": "Cooperative Good Governance",
			"14": "Bookkeeping",
			"15": "Quality Control and Processing Overview",
		},
		"new": {
			"1":  "Post Harvest Coffee Quality and Processing",
			"2":  "Sustainability Standards Overview (SSO)",
			"3":  "Social Responsibility and Ethics (SRE)",
			"4":  "Gender",
			"5":  "Environmental Responsibility (ER)",
			"6":  "Occupational Health and Safety (OHS)",
			"7":  "Finance and Bookkeeping",
			"8":  "Wet Mill Processing and Quality Control",
			"9":  "TASQ Overview",
			"10": "TASQ Inclusive Pillar",
			"11": "TASQ Regenerative Pillar",
			"12": "Bookkeeping",
			"13": "Cooperative Governance",
			"14": "Farm Level Traceability",
			"15": "Wet Mill Processing and Quality Control",
			"16": "Wet Mill coffee processing Parchment Traceability",
			"17": "Pulping Machine Operations and Maintenance",
			"18": "Nespresso AAA Regenerative Pillar Lesson Plan",
			"19": "IPDM Lesson Plan for Coop leaders and Agrochemical Storekeepers",
			"20": "Nespresso AAA TASQ Overview",
			"21": "Nespresso AAA Inclusive Pillar Lesson Plan",
			"22": "Safe use handling and storage",
			"23": "Kenya AAA POSA (Producer Organization Sustainability Assessment)",
		},
	}

	TrainingStatusText = map[string]string{"1": "New", "2": "Refresher"}

	LagoonMaterialText = map[string]string{"1": "Earth", "2": "Concrete"}

	VetiverTypeText = map[string]string{"1": "Single wetland", "2": "Stepped wetland (multiple wetlands)"}

	VetiverMaintenanceText = map[string]string{
		"1": "Leveling/correction",
		"2": "Soil bund maintenance",
		"3": "Vetiver grass replacement",
		"4": "Weeding",
		"5": "Vetiver cutting",
		"6": "Connecting channel maintenance",
		"0": "None",
	}

	WasteWaterAdviceText = map[string]string{
		"1": "Pulp separation advice",
		"2": "Lagoon or pond maintenance or location advice",
		"3": "Vetiver wetland maintenance advice",
	}

	WasteWaterMethodText = map[string]string{
		"1": "Open lagoon or pond",
		"2": "Vetiver Wetland",
		"0": "No wastewater management, released onto land or into river",
	}

	PulpSeparationText = map[string]string{
		"1":          "Pulp hopper",
		"2":          "Re-circulation pump with skin tower",
		"eco-pulper": "Eco-pulper",
	}

	WaterUseMethodText = map[string]string{
		"1": "Water meter",
		"2": "Dip stick and tank size",
		"0": "No method used",
	}

	WaterUseEffortText = map[string]string{
		"1": "Turning water taps off when not in use",
		"2": "Recirculation pump",
		"3": "Eco pulper",
		"4": "Repairing all leaks in tanks, pipes and gate valves",
		"0": "No efforts being made to reduce water consumption",
	}

	EnergyUseSourceText = map[string]string{
		"1": "Mains electricity",
		"2": "Diesel generator",
		"3": "Solar panels",
	}

	PurposeOfVisitText = map[string]string{
		"1": "Performance of last year (Q1 and Q2)",
		"2": "Process quality check",
		"3": "SWOT analysis (Q1 and Q2)",
		"4": "Gender action plan meeting",
		"5": "Perform annual audit",
		"6": "Discuss annual audit feedback",
		"7": "Review visit (prior to advice from previous visits)",
	}

	FarmerPaymentMethodText = map[string]string{"1": "Direct payment", "2": "Broker"}
)

// Surveys that are ingested from wet mill visit forms. Anything else under
// form.surveys is skipped.
var AllowedSurveys = map[string]bool{
	"wet_mill_training":                   true,
	"routine_visit":                       true,
	"manager_needs_assessment":            true,
	"infrastructure":                      true,
	"waste_water_management":              true,
	"cpqi":                                true,
	"cherry_weekly_price":                 true,
	"kpis":                                true,
	"water_and_energy_use":                true,
	"financials":                          true,
	"employees":                           true,
	"gender_equitable_business_practices": true,
}

// MapCode translates a code through a map, falling back to def.
func MapCode(value string, codes map[string]string, def string) string {
	if text, ok := codes[value]; ok {
		return text
	}
	return def
}

// MapManagerRole translates a manager role code for a registration survey
// type. Code 99 carries a free text role.
func MapManagerRole(value, other, surveyType string) string {
	if value == "99" {
		return other
	}
	return MapCode(value, ManagerRoleText[surveyType], "undefined")
}

// MapMillStatus translates a mill status code for a registration survey type.
func MapMillStatus(value, surveyType string) string {
	return MapCode(value, WetMillStatusText[surveyType], "undefined")
}

// MapMulti splits a space separated multiselect and maps each known code.
func MapMulti(value string, codes map[string]string) []string {
	var out []string
	for _, code := range strings.Fields(value) {
		if text, ok := codes[code]; ok {
			out = append(out, text)
		}
	}
	return out
}

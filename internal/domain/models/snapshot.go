package models

// StorageKey is the fixed versioned key the snapshot blob is persisted under.
const StorageKey = "dairy_pro_farm_data_v4"

// ModuleID identifies a dashboard view.
type ModuleID string

const (
	ModuleCowList    ModuleID = "COW_LIST"
	ModuleCalfList   ModuleID = "CALF_LIST"
	ModuleFeedLog    ModuleID = "FEED_LOG"
	ModuleGenetics   ModuleID = "GENETICS"
	ModuleMilkSales  ModuleID = "MILK_SALES"
	ModuleLabour     ModuleID = "LABOUR"
	ModuleProfitLoss ModuleID = "PROFIT_LOSS"
	ModuleExpenses   ModuleID = "EXPENSES"
	ModuleProducts   ModuleID = "PRODUCTS"
	ModuleCalculator ModuleID = "CALCULATOR"
	ModuleMedicine   ModuleID = "MEDICINE"
	ModuleReports    ModuleID = "REPORTS"
)

// DashboardModule toggles an aggregate view on the dashboard.
type DashboardModule struct {
	ID      ModuleID `json:"id"`
	Label   string   `json:"label"`
	Icon    string   `json:"icon"`
	Enabled bool     `json:"enabled"`
}

// DefaultModules returns a fresh copy of the canonical module list. It seeds
// first-run data and backfills blobs stored before modules existed.
func DefaultModules() []DashboardModule {
	return []DashboardModule{
		{ID: ModuleCowList, Label: "Cows", Icon: "🐄", Enabled: true},
		{ID: ModuleCalfList, Label: "Calves", Icon: "🍼", Enabled: true},
		{ID: ModuleMilkSales, Label: "Milk Sales", Icon: "🥛", Enabled: true},
		{ID: ModuleReports, Label: "Reports", Icon: "📊", Enabled: true},
		{ID: ModuleFeedLog, Label: "Feed", Icon: "🌾", Enabled: false},
		{ID: ModuleLabour, Label: "Labour", Icon: "👷", Enabled: false},
		{ID: ModuleMedicine, Label: "Medical", Icon: "🩹", Enabled: false},
		{ID: ModuleGenetics, Label: "Genetics", Icon: "🧬", Enabled: false},
		{ID: ModuleProducts, Label: "Inventory", Icon: "📦", Enabled: false},
		{ID: ModuleCalculator, Label: "Calc", Icon: "🧮", Enabled: false},
	}
}

// FarmData is the complete record set at a point in time. Values handed out
// by the state container must be treated as read-only.
type FarmData struct {
	Cows             []Cow             `json:"cows"`
	Calves           []Calf            `json:"calves"`
	Feeds            []FeedEntry       `json:"feeds"`
	Medicines        []Medicine        `json:"medicines"`
	Genetics         []GeneticSemen    `json:"genetics"`
	MilkSales        []MilkSale        `json:"milkSales"`
	Labours          []Labour          `json:"labours"`
	Expenses         []Expense         `json:"expenses"`
	Products         []Product         `json:"products"`
	DashboardModules []DashboardModule `json:"dashboardModules"`
}

// NewFarmData returns the empty first-run snapshot.
func NewFarmData() FarmData {
	return FarmData{
		Cows:             []Cow{},
		Calves:           []Calf{},
		Feeds:            []FeedEntry{},
		Medicines:        []Medicine{},
		Genetics:         []GeneticSemen{},
		MilkSales:        []MilkSale{},
		Labours:          []Labour{},
		Expenses:         []Expense{},
		Products:         []Product{},
		DashboardModules: DefaultModules(),
	}
}

// FindCow returns the index of the cow with id, or -1.
func (d FarmData) FindCow(id string) int {
	for i := range d.Cows {
		if d.Cows[i].ID == id {
			return i
		}
	}
	return -1
}

// FindCalf returns the index of the calf with id, or -1.
func (d FarmData) FindCalf(id string) int {
	for i := range d.Calves {
		if d.Calves[i].ID == id {
			return i
		}
	}
	return -1
}

// FindLabour returns the index of the worker with id, or -1.
func (d FarmData) FindLabour(id string) int {
	for i := range d.Labours {
		if d.Labours[i].ID == id {
			return i
		}
	}
	return -1
}

package grpc

// Wire messages of finance.v1.FinanceService. Amounts are decimal strings,
// dates are YYYY-MM-DD.

type Category struct {
	Id    string `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type,omitempty"`
	Color string `json:"color,omitempty"`
	Icon  string `json:"icon,omitempty"`
}

type Transaction struct {
	Id          string    `json:"id"`
	Description string    `json:"description"`
	Amount      string    `json:"amount"`
	Type        string    `json:"type"`
	Date        string    `json:"date"`
	CategoryId  string    `json:"category_id,omitempty"`
	Category    *Category `json:"category,omitempty"`
}

type Summary struct {
	TotalIncome   string `json:"total_income"`
	TotalExpenses string `json:"total_expenses"`
	Balance       string `json:"balance"`
}

type MonthlyBucket struct {
	Label    string `json:"label"`
	Year     int    `json:"year"`
	Month    int    `json:"month"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Income   string `json:"income"`
	Expenses string `json:"expenses"`
	Net      string `json:"net"`
}

type DistributionSlice struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Color string `json:"color"`
}

type GetStateResponse struct {
	Transactions []*Transaction `json:"transactions"`
	Categories   []*Category    `json:"categories"`
	Summary      *Summary       `json:"summary"`
	Loading      bool           `json:"loading"`
	Error        string         `json:"error,omitempty"`
}

type GetOverviewRequest struct {
	// Now anchors the monthly series; server time when empty
	Now string `json:"now,omitempty"`
}

type GetOverviewResponse struct {
	Summary          *Summary             `json:"summary"`
	Monthly          []*MonthlyBucket     `json:"monthly"`
	Distribution     []*DistributionSlice `json:"distribution"`
	Recent           []*Transaction       `json:"recent"`
	TransactionCount int                  `json:"transaction_count"`
	CategoryCount    int                  `json:"category_count"`
	Loading          bool                 `json:"loading"`
	Error            string               `json:"error,omitempty"`
}

type AddTransactionRequest struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Type        string `json:"type"`
	Date        string `json:"date"`
	CategoryId  string `json:"category_id,omitempty"`
}

// UpdateTransactionRequest carries a partial update; nil fields are unchanged.
// An empty CategoryId clears the category.
type UpdateTransactionRequest struct {
	Id          string  `json:"id"`
	Description *string `json:"description,omitempty"`
	Amount      *string `json:"amount,omitempty"`
	Type        *string `json:"type,omitempty"`
	Date        *string `json:"date,omitempty"`
	CategoryId  *string `json:"category_id,omitempty"`
}

type TransactionResponse struct {
	Transaction *Transaction `json:"transaction"`
}

type DeleteRequest struct {
	Id string `json:"id"`
}

type AddCategoryRequest struct {
	Name  string `json:"name"`
	Type  string `json:"type,omitempty"`
	Color string `json:"color,omitempty"`
	Icon  string `json:"icon,omitempty"`
}

type UpdateCategoryRequest struct {
	Id    string  `json:"id"`
	Name  *string `json:"name,omitempty"`
	Type  *string `json:"type,omitempty"`
	Color *string `json:"color,omitempty"`
	Icon  *string `json:"icon,omitempty"`
}

type CategoryResponse struct {
	Category *Category `json:"category"`
}

type ListTransactionsByPeriodRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type ListTransactionsResponse struct {
	Transactions []*Transaction `json:"transactions"`
}

type FinancialSummaryResponse struct {
	TotalIncome      string `json:"total_income"`
	TotalExpenses    string `json:"total_expenses"`
	Balance          string `json:"balance"`
	TransactionCount int    `json:"transaction_count"`
}

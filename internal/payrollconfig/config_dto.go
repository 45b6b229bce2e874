package payrollconfig

type TaxBracketInput struct {
	MinAmount string  `json:"min_amount" binding:"required"`
	MaxAmount *string `json:"max_amount"`
	Rate      string  `json:"rate" binding:"required"`
}

type CreateConfigRequest struct {
	EffectiveFrom string `json:"effective_from" binding:"required"`

	HourlyRate         string `json:"hourly_rate" binding:"required"`
	OvertimeHourlyRate string `json:"overtime_hourly_rate" binding:"required"`
	AttendanceBonus    string `json:"attendance_bonus"`

	HousingAllowance     string `json:"housing_allowance"`
	WaterAllowance       string `json:"water_allowance"`
	ElectricityAllowance string `json:"electricity_allowance"`
	InternetAllowance    string `json:"internet_allowance"`
	DoctorFee            string `json:"doctor_fee"`

	WaterUnitRate       string `json:"water_unit_rate"`
	ElectricityUnitRate string `json:"electricity_unit_rate"`
	InternetMonthlyFee  string `json:"internet_monthly_fee"`

	SSOEmployeeRate string `json:"sso_employee_rate" binding:"required"`
	SSOEmployerRate string `json:"sso_employer_rate" binding:"required"`
	SSOWageCap      string `json:"sso_wage_cap" binding:"required"`

	PFRateMin string `json:"pf_rate_min"`
	PFRateMax string `json:"pf_rate_max"`

	ApplyStandardExpense   bool   `json:"apply_standard_expense"`
	StandardExpenseRate    string `json:"standard_expense_rate"`
	StandardExpenseCap     string `json:"standard_expense_cap"`
	ApplyPersonalAllowance bool   `json:"apply_personal_allowance"`
	PersonalAllowance      string `json:"personal_allowance"`
	ServiceWithholdingRate string `json:"service_withholding_rate"`

	Brackets []TaxBracketInput `json:"brackets" binding:"required"`
}

type TaxBracketResponse struct {
	Position  int     `json:"position"`
	MinAmount string  `json:"min_amount"`
	MaxAmount *string `json:"max_amount,omitempty"`
	Rate      string  `json:"rate"`
}

type ConfigResponse struct {
	ID            string `json:"id"`
	Version       int    `json:"version"`
	EffectiveFrom string `json:"effective_from"`

	HourlyRate         string `json:"hourly_rate"`
	OvertimeHourlyRate string `json:"overtime_hourly_rate"`
	AttendanceBonus    string `json:"attendance_bonus"`

	HousingAllowance     string `json:"housing_allowance"`
	WaterAllowance       string `json:"water_allowance"`
	ElectricityAllowance string `json:"electricity_allowance"`
	InternetAllowance    string `json:"internet_allowance"`
	DoctorFee            string `json:"doctor_fee"`

	WaterUnitRate       string `json:"water_unit_rate"`
	ElectricityUnitRate string `json:"electricity_unit_rate"`
	InternetMonthlyFee  string `json:"internet_monthly_fee"`

	SSOEmployeeRate string `json:"sso_employee_rate"`
	SSOEmployerRate string `json:"sso_employer_rate"`
	SSOWageCap      string `json:"sso_wage_cap"`

	PFRateMin string `json:"pf_rate_min"`
	PFRateMax string `json:"pf_rate_max"`

	ApplyStandardExpense   bool   `json:"apply_standard_expense"`
	StandardExpenseRate    string `json:"standard_expense_rate"`
	StandardExpenseCap     string `json:"standard_expense_cap"`
	ApplyPersonalAllowance bool   `json:"apply_personal_allowance"`
	PersonalAllowance      string `json:"personal_allowance"`
	ServiceWithholdingRate string `json:"service_withholding_rate"`

	Brackets []TaxBracketResponse `json:"brackets"`

	CreatedBy string `json:"created_by"`
	CreatedAt string `json:"created_at"`
}

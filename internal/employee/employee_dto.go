package employee

type ContributionProfileInput struct {
	SSOContribute   bool    `json:"sso_contribute"`
	SSODeclaredWage *string `json:"sso_declared_wage"`
	PFContribute    bool    `json:"pf_contribute"`
	PFEmployeeRate  string  `json:"pf_employee_rate"`
	PFEmployerRate  string  `json:"pf_employer_rate"`
	WithholdTax     bool    `json:"withhold_tax"`

	HousingAllowance     bool `json:"housing_allowance"`
	WaterAllowance       bool `json:"water_allowance"`
	ElectricityAllowance bool `json:"electricity_allowance"`
	InternetAllowance    bool `json:"internet_allowance"`
	DoctorFeeAllowance   bool `json:"doctor_fee_allowance"`
}

type CreateEmployeeRequest struct {
	FullName   string                   `json:"full_name" binding:"required"`
	PayType    string                   `json:"pay_type" binding:"required"`
	BaseSalary string                   `json:"base_salary" binding:"required"`
	Profile    ContributionProfileInput `json:"profile"`
}

type UpdateEmployeeRequest struct {
	FullName   string                   `json:"full_name" binding:"required"`
	PayType    string                   `json:"pay_type" binding:"required"`
	BaseSalary string                   `json:"base_salary" binding:"required"`
	Active     bool                     `json:"active"`
	Profile    ContributionProfileInput `json:"profile"`
}

type ContributionProfileResponse struct {
	SSOContribute   bool    `json:"sso_contribute"`
	SSODeclaredWage *string `json:"sso_declared_wage,omitempty"`
	PFContribute    bool    `json:"pf_contribute"`
	PFEmployeeRate  string  `json:"pf_employee_rate"`
	PFEmployerRate  string  `json:"pf_employer_rate"`
	WithholdTax     bool    `json:"withhold_tax"`

	HousingAllowance     bool `json:"housing_allowance"`
	WaterAllowance       bool `json:"water_allowance"`
	ElectricityAllowance bool `json:"electricity_allowance"`
	InternetAllowance    bool `json:"internet_allowance"`
	DoctorFeeAllowance   bool `json:"doctor_fee_allowance"`
}

type EmployeeResponse struct {
	ID         string                      `json:"id"`
	BranchID   string                      `json:"branch_id"`
	FullName   string                      `json:"full_name"`
	PayType    string                      `json:"pay_type"`
	Active     bool                        `json:"active"`
	BaseSalary string                      `json:"base_salary"`
	Profile    ContributionProfileResponse `json:"profile"`
}

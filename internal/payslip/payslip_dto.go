package payslip

type MeterReadingsInput struct {
	WaterPrev       *string `json:"water_prev"`
	WaterCur        *string `json:"water_cur"`
	ElectricityPrev *string `json:"electricity_prev"`
	ElectricityCur  *string `json:"electricity_cur"`
}

type ItemInput struct {
	Kind   string `json:"kind" binding:"required"`
	Name   string `json:"name" binding:"required"`
	Amount string `json:"amount" binding:"required"`
}

// CreatePayslipRequest carries the raw period inputs the settlement core
// consumes. Attendance amounts arrive pre-computed from the worklog side.
type CreatePayslipRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	Period     string `json:"period" binding:"required"` // YYYY-MM

	HoursWorked   string `json:"hours_worked"`
	OvertimeHours string `json:"overtime_hours"`

	AttendanceBonus   string `json:"attendance_bonus"`
	Bonus             string `json:"bonus"`
	LeaveCompensation string `json:"leave_compensation"`
	DoctorFee         string `json:"doctor_fee"`

	LatePenalty      string `json:"late_penalty"`
	LeavePenalty     string `json:"leave_penalty"`
	AdvanceRepayment string `json:"advance_repayment"`

	Meters MeterReadingsInput `json:"meters"`
	Items  []ItemInput        `json:"items"`
}

// UpdatePayslipRequest replaces every editable line in one shot. Absent
// optional fields fall back to the stored value so single-field edits do
// not have to echo the whole slip.
type UpdatePayslipRequest struct {
	Salary            *string `json:"salary"`
	Overtime          *string `json:"overtime"`
	AttendanceBonus   *string `json:"attendance_bonus"`
	Bonus             *string `json:"bonus"`
	LeaveCompensation *string `json:"leave_compensation"`
	DoctorFee         *string `json:"doctor_fee"`

	HousingAllowance     *string `json:"housing_allowance"`
	WaterAllowance       *string `json:"water_allowance"`
	ElectricityAllowance *string `json:"electricity_allowance"`
	InternetAllowance    *string `json:"internet_allowance"`

	LatePenalty       *string `json:"late_penalty"`
	LeavePenalty      *string `json:"leave_penalty"`
	SSO               *string `json:"sso"`
	ProvidentFund     *string `json:"provident_fund"`
	WaterCharge       *string `json:"water_charge"`
	ElectricityCharge *string `json:"electricity_charge"`
	InternetCharge    *string `json:"internet_charge"`
	AdvanceRepayment  *string `json:"advance_repayment"`

	Meters *MeterReadingsInput `json:"meters"`
	Items  []ItemInput         `json:"items"`
}

// SetTaxModeRequest switches the tax line between the recomputed and the
// pinned state.
type SetTaxModeRequest struct {
	Mode   string  `json:"mode" binding:"required"`
	Amount *string `json:"amount"`
}

type RunBatchRequest struct {
	Period string `json:"period" binding:"required"` // YYYY-MM
}

type ItemResponse struct {
	ID            string  `json:"id"`
	Kind          string  `json:"kind"`
	Name          string  `json:"name"`
	Amount        string  `json:"amount"`
	InstallmentID *string `json:"installment_id,omitempty"`
}

type MeterReadingsResponse struct {
	WaterPrev       *string `json:"water_prev,omitempty"`
	WaterCur        *string `json:"water_cur,omitempty"`
	ElectricityPrev *string `json:"electricity_prev,omitempty"`
	ElectricityCur  *string `json:"electricity_cur,omitempty"`
}

type PayslipResponse struct {
	ID         string `json:"id"`
	BranchID   string `json:"branch_id"`
	EmployeeID string `json:"employee_id"`
	Period     string `json:"period"`
	DocNo      string `json:"doc_no"`
	Status     string `json:"status"`

	Salary            string `json:"salary"`
	Overtime          string `json:"overtime"`
	AttendanceBonus   string `json:"attendance_bonus"`
	Bonus             string `json:"bonus"`
	LeaveCompensation string `json:"leave_compensation"`
	DoctorFee         string `json:"doctor_fee"`

	HousingAllowance     string `json:"housing_allowance"`
	WaterAllowance       string `json:"water_allowance"`
	ElectricityAllowance string `json:"electricity_allowance"`
	InternetAllowance    string `json:"internet_allowance"`

	LatePenalty       string `json:"late_penalty"`
	LeavePenalty      string `json:"leave_penalty"`
	Tax               string `json:"tax"`
	TaxMode           string `json:"tax_mode"`
	SSO               string `json:"sso"`
	ProvidentFund     string `json:"provident_fund"`
	WaterCharge       string `json:"water_charge"`
	ElectricityCharge string `json:"electricity_charge"`
	InternetCharge    string `json:"internet_charge"`
	AdvanceRepayment  string `json:"advance_repayment"`

	Meters MeterReadingsResponse `json:"meters"`
	Items  []ItemResponse        `json:"items"`

	IncomeTotal    string `json:"income_total"`
	DeductionTotal string `json:"deduction_total"`
	NetPay         string `json:"net_pay"`

	CreatedBy  string  `json:"created_by"`
	ApprovedBy *string `json:"approved_by,omitempty"`
	ApprovedAt *string `json:"approved_at,omitempty"`
	PaidAt     *string `json:"paid_at,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

// BatchFailure records one employee a settlement run could not settle. The
// run keeps going for everyone else.
type BatchFailure struct {
	EmployeeID string `json:"employee_id"`
	Reason     string `json:"reason"`
}

type RunBatchResponse struct {
	Period       string            `json:"period"`
	SettledCount int               `json:"settled_count"`
	Settled      []PayslipResponse `json:"settled"`
	FailedCount  int               `json:"failed_count"`
	Failures     []BatchFailure    `json:"failures"`
}

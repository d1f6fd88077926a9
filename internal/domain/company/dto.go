package company

type CompanyResponse struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	GroupingMode         string `json:"grouping_mode"`
	Timezone             string `json:"timezone"`
	StandardWorkMinutes  int    `json:"standard_work_minutes"`
	AutoApproveThreshold string `json:"auto_approve_threshold"`
	MismatchTolerance    string `json:"mismatch_tolerance"`
}

func NewCompanyResponse(c Company) CompanyResponse {
	return CompanyResponse{
		ID:                   c.ID,
		Name:                 c.Name,
		GroupingMode:         string(c.GroupingMode),
		Timezone:             c.Timezone,
		StandardWorkMinutes:  c.StandardWorkMinutes,
		AutoApproveThreshold: c.AutoApproveThreshold.StringFixed(2),
		MismatchTolerance:    c.MismatchTolerance.StringFixed(2),
	}
}

package employee

type EmployeeResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Lastname    string `json:"lastname,omitempty"`
	TypeService string `json:"typeService"`
	StartDate   string `json:"startDate"`
	Status      string `json:"status"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:          e.ID,
		Name:        e.Name,
		Lastname:    e.Lastname,
		TypeService: e.TypeService,
		StartDate:   e.StartDate.Format("2006-01-02"),
		Status:      string(e.Status),
	}
}

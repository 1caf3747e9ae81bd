package model

// Metadata correlates an outbound webhook with the browser session that produced it.
type Metadata struct {
	SessionID string `json:"sessionId"`
	IPAddress string `json:"ipAddress"`
	UserAgent string `json:"userAgent"`
	Referrer  string `json:"referrer"`
	URL       string `json:"url"`
}

// StepLead is the contact subset sent after step 1.
type StepLead struct {
	FirstName        string `json:"firstName"`
	Email            string `json:"email" validate:"required,email"`
	Phone            string `json:"phone" validate:"required"`
	PreferredContact string `json:"preferredContact"`
}

// Step1Payload is the internal step-1 webhook body.
type Step1Payload struct {
	Step      int      `json:"step"`
	Timestamp string   `json:"timestamp"`
	LeadData  StepLead `json:"leadData" validate:"required"`
	Metadata  Metadata `json:"metadata"`
}

// CompleteLead is the full lead sent after final submission.
type CompleteLead struct {
	Email             string   `json:"email" validate:"required,email"`
	Phone             string   `json:"phone"`
	PreferredContact  string   `json:"preferredContact"`
	FullName          string   `json:"fullName" validate:"required"`
	FirstName         string   `json:"firstName"`
	LastName          string   `json:"lastName"`
	IncidentDate      string   `json:"incidentDate"`
	AccidentType      string   `json:"accidentType"`
	InjuryDescription string   `json:"injuryDescription"`
	MedicalTreatment  []string `json:"medicalTreatment"`
	HasInsurance      string   `json:"hasInsurance"`
	PoliceReport      string   `json:"policeReport"`
	FaultAssignment   string   `json:"faultAssignment"`
	AdditionalDetails string   `json:"additionalDetails"`
}

// Step2Payload is the internal final-step webhook body.
type Step2Payload struct {
	Step         int          `json:"step"`
	Timestamp    string       `json:"timestamp"`
	CompleteLead CompleteLead `json:"completeLead" validate:"required"`
	CaseScore    int          `json:"caseScore"`
	Priority     Priority     `json:"priority"`
	Metadata     Metadata     `json:"metadata"`
}

// ExternalPayload is the flattened body sent to the external automation
// endpoint. Email doubles as the key linking step-1 and step-2 events.
type ExternalPayload struct {
	Step              int      `json:"step,omitempty"`
	FirstName         string   `json:"firstName"`
	LastName          string   `json:"lastName,omitempty"`
	Email             string   `json:"email"`
	Phone             string   `json:"phone"`
	PreferredContact  string   `json:"preferredContact"`
	IncidentDate      string   `json:"incidentDate,omitempty"`
	AccidentType      string   `json:"accidentType,omitempty"`
	InjuryDescription string   `json:"injuryDescription,omitempty"`
	MedicalTreatment  []string `json:"medicalTreatment,omitempty"`
	HasInsurance      string   `json:"hasInsurance,omitempty"`
	PoliceReport      string   `json:"policeReport,omitempty"`
	FaultAssignment   string   `json:"faultAssignment,omitempty"`
	AdditionalDetails string   `json:"additionalDetails,omitempty"`
	CaseScore         *int     `json:"caseScore,omitempty"`
	Priority          Priority `json:"priority,omitempty"`
	SessionID         string   `json:"sessionId,omitempty"`
}

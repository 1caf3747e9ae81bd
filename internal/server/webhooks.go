package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/sells-group/lead-intake/internal/model"
	"github.com/sells-group/lead-intake/internal/scorer"
)

// Step1Response acknowledges a captured lead.
type Step1Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	LeadID  string `json:"leadId"`
}

// Step2Response acknowledges a completed case intake.
type Step2Response struct {
	Success       bool                `json:"success"`
	Message       string              `json:"message"`
	CaseID        string              `json:"caseId"`
	Qualification model.Qualification `json:"qualification"`
	Priority      model.Priority      `json:"priority"`
	NextSteps     []string            `json:"nextSteps"`
}

func (s *Server) handleStep1(w http.ResponseWriter, r *http.Request) {
	var body model.Step1Payload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := s.validate.Struct(body.LeadData); err != nil {
		zap.L().Debug("server: step1 rejected", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing required lead data"})
		return
	}

	zap.L().Info("server: step1 lead captured",
		zap.String("timestamp", body.Timestamp),
		zap.String("email", body.LeadData.Email),
		zap.String("phone", body.LeadData.Phone),
		zap.String("preferred_contact", body.LeadData.PreferredContact),
		zap.String("session_id", body.Metadata.SessionID),
		zap.String("ip_address", body.Metadata.IPAddress),
		zap.String("user_agent", body.Metadata.UserAgent),
		zap.String("referrer", body.Metadata.Referrer),
	)

	writeJSON(w, http.StatusOK, Step1Response{
		Success: true,
		Message: "Lead captured successfully",
		LeadID:  newID("lead", s.now()),
	})
}

func (s *Server) handleStep2(w http.ResponseWriter, r *http.Request) {
	var body model.Step2Payload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	lead := body.CompleteLead
	if err := s.validate.Struct(lead); err != nil {
		zap.L().Debug("server: step2 rejected", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing required case data"})
		return
	}

	q := scorer.Qualify(scorer.QualifyInput{
		Score:        body.CaseScore,
		Priority:     body.Priority,
		AccidentType: lead.AccidentType,
		IncidentDate: lead.IncidentDate,
	}, s.now())

	zap.L().Info("server: step2 case intake",
		zap.String("timestamp", body.Timestamp),
		zap.String("full_name", lead.FullName),
		zap.String("email", lead.Email),
		zap.String("incident_date", lead.IncidentDate),
		zap.String("accident_type", lead.AccidentType),
		zap.Strings("medical_treatment", lead.MedicalTreatment),
		zap.Int("case_score", body.CaseScore),
		zap.String("priority", string(body.Priority)),
		zap.String("urgency", string(q.Urgency)),
		zap.String("session_id", body.Metadata.SessionID),
	)

	writeJSON(w, http.StatusOK, Step2Response{
		Success:       true,
		Message:       "Case intake completed successfully",
		CaseID:        newID("case", s.now()),
		Qualification: q,
		Priority:      body.Priority,
		NextSteps:     q.NextSteps,
	})
}

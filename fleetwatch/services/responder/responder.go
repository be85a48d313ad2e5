// Package responder generates the dashboard's canned chat replies. It is a
// keyword matcher over an ordered rule table, not a language model: first
// matching rule wins, matching is a case-insensitive substring check.
package responder

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Rule struct {
	Keywords []string `yaml:"keywords"`
	Reply    string   `yaml:"reply"`
}

type ruleFile struct {
	Rules    []Rule `yaml:"rules"`
	Fallback string `yaml:"fallback"`
}

type Responder struct {
	rules    []Rule
	fallback string
}

// New returns a responder with the built-in rule table.
func New() *Responder {
	return &Responder{
		rules: []Rule{
			{
				Keywords: []string{"risk"},
				Reply:    "Our diagnostics estimate a {risk_score}% probability of failure. This vehicle is currently classified as {risk} risk.",
			},
			{
				Keywords: []string{"why"},
				Reply:    "Risk is driven by the vehicle's mileage, engine temperature and recorded error codes. High readings on any of these raise the failure probability.",
			},
			{
				Keywords: []string{"service", "book"},
				Reply:    "Based on the current condition, booking a service appointment soon is a good idea. Open the schedule page to pick a service center, date and time.",
			},
			{
				Keywords: []string{"cost"},
				Reply:    "A standard maintenance service averages around 4500. The final cost depends on the service center and the work required.",
			},
		},
		fallback: "I can help with your vehicle's risk status, explain why it is at risk, book a service, or give a cost estimate.",
	}
}

// NewFromFile loads a YAML rule table, replacing the built-in one. Matching
// semantics are unchanged; only keywords and reply text come from the file.
func NewFromFile(path string) (*Responder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read chat rules: %w", err)
	}
	var rf ruleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parse chat rules: %w", err)
	}
	if len(rf.Rules) == 0 {
		return nil, fmt.Errorf("chat rules file %s has no rules", path)
	}
	r := New()
	r.rules = rf.Rules
	if rf.Fallback != "" {
		r.fallback = rf.Fallback
	}
	return r, nil
}

// Respond picks the first rule whose keyword occurs in the message and
// expands {risk} / {risk_score} placeholders. Deterministic and stateless.
func (r *Responder) Respond(message, risk string, riskScore float64) string {
	lower := strings.ToLower(message)
	for _, rule := range r.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return expand(rule.Reply, risk, riskScore)
			}
		}
	}
	return expand(r.fallback, risk, riskScore)
}

func expand(reply, risk string, riskScore float64) string {
	reply = strings.ReplaceAll(reply, "{risk}", risk)
	reply = strings.ReplaceAll(reply, "{risk_score}", strconv.FormatFloat(riskScore, 'f', -1, 64))
	return reply
}

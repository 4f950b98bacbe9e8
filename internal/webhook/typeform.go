// internal/webhook/typeform.go
package webhook

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	stderrors "minus-backend/internal/common/errors"
	"minus-backend/internal/questionnaire"
)

// envelopeSchema gates obviously malformed webhook bodies before parsing.
// Ping events carry no form_response, so only event_type is unconditionally
// required.
const envelopeSchema = `{
	"type": "object",
	"required": ["event_type"],
	"properties": {
		"event_type": {"type": "string"},
		"form_response": {
			"type": "object",
			"required": ["answers"],
			"properties": {
				"answers": {"type": "array", "items": {"type": "object", "required": ["type", "field"]}},
				"definition": {"type": "object"},
				"hidden": {"type": "object"}
			}
		}
	}
}`

var schema = gojsonschema.NewStringLoader(envelopeSchema)

// Envelope is the webhook body shell.
type Envelope struct {
	EventID      string        `json:"event_id"`
	EventType    string        `json:"event_type"`
	FormResponse *FormResponse `json:"form_response"`
}

// IsPing reports whether this is a connectivity check rather than a
// submission.
func (e *Envelope) IsPing() bool {
	return e.EventType == "ping"
}

type FormResponse struct {
	FormID     string            `json:"form_id"`
	Answers    []Answer          `json:"answers"`
	Definition Definition        `json:"definition"`
	Hidden     map[string]string `json:"hidden"`
}

type Definition struct {
	Fields []FieldDef `json:"fields"`
}

type FieldDef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Answer carries one response. Only the member matching Type is populated;
// Raw keeps the original object for types without a dedicated member.
type Answer struct {
	Type  string `json:"type"`
	Field struct {
		ID  string `json:"id"`
		Ref string `json:"ref"`
	} `json:"field"`
	Text    string   `json:"text"`
	Email   string   `json:"email"`
	Date    string   `json:"date"`
	Number  *float64 `json:"number"`
	Boolean *bool    `json:"boolean"`
	Choice  struct {
		Label string `json:"label"`
	} `json:"choice"`
	Choices struct {
		Labels []string `json:"labels"`
	} `json:"choices"`

	Raw map[string]json.RawMessage `json:"-"`
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	type plain Answer
	if err := json.Unmarshal(data, (*plain)(a)); err != nil {
		return err
	}
	return json.Unmarshal(data, &a.Raw)
}

var keySanitizer = regexp.MustCompile(`[^a-zA-Z0-9_]`)

// ParseEnvelope validates and decodes a webhook body.
func ParseEnvelope(body []byte) (*Envelope, error) {
	result, err := gojsonschema.Validate(schema, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return nil, stderrors.NewWebhookParseFailedError(err.Error())
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			details = append(details, e.String())
		}
		return nil, stderrors.NewWebhookParseFailedError(strings.Join(details, "; "))
	}

	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, stderrors.NewWebhookParseFailedError(err.Error())
	}
	return &env, nil
}

// Flatten turns the form response into an answer set. The field ref is the
// preferred key; a missing, auto-generated (ref_*) or uuid-style ref falls
// back to the question title. Keys are sanitized to snake_case-ish tokens,
// restored to canonical casing where they match a fixed answer-set key, and
// hidden fields are merged on top.
func Flatten(env *Envelope) (questionnaire.AnswerSet, error) {
	if env.FormResponse == nil {
		return nil, stderrors.NewWebhookParseFailedError("form_response missing")
	}

	titles := make(map[string]string, len(env.FormResponse.Definition.Fields))
	for _, f := range env.FormResponse.Definition.Fields {
		titles[f.ID] = f.Title
	}

	answers := make(questionnaire.AnswerSet)
	for _, a := range env.FormResponse.Answers {
		key := a.Field.Ref
		if key == "" || strings.HasPrefix(key, "ref_") || strings.Contains(key, "-") {
			if title, ok := titles[a.Field.ID]; ok {
				key = title
			}
		}
		if key == "" {
			continue
		}

		key = strings.ToLower(keySanitizer.ReplaceAllString(key, "_"))
		answers.Set(questionnaire.CanonicalKey(key), answerValue(a))
	}

	for k, v := range env.FormResponse.Hidden {
		answers.Set(questionnaire.CanonicalKey(k), v)
	}
	return answers, nil
}

func answerValue(a Answer) string {
	switch a.Type {
	case "text":
		return a.Text
	case "email":
		return a.Email
	case "date":
		return a.Date
	case "number":
		if a.Number == nil {
			return ""
		}
		return strconv.FormatFloat(*a.Number, 'f', -1, 64)
	case "boolean":
		// Gates downstream speak Yes/No.
		if a.Boolean != nil && *a.Boolean {
			return "Yes"
		}
		return "No"
	case "choice":
		return a.Choice.Label
	case "choices":
		return strings.Join(a.Choices.Labels, ", ")
	default:
		if raw, ok := a.Raw[a.Type]; ok {
			return string(raw)
		}
		return ""
	}
}

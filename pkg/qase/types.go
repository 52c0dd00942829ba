package qase

import (
	"fmt"
	"strings"
)

// CustomField is one custom-field value attached to a case. Values arrive as
// whatever JSON type the field uses, so they are held loosely and stringified
// on access.
type CustomField struct {
	ID    int `json:"id"`
	Value any `json:"value"`
}

// Case is a test case.
type Case struct {
	ID           int           `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	CustomFields []CustomField `json:"custom_fields"`
}

// CustomFieldValue returns the trimmed string form of the custom field with
// the given ID, or "" when the case does not carry it.
func (c *Case) CustomFieldValue(fieldID int) string {
	for _, field := range c.CustomFields {
		if field.ID != fieldID {
			continue
		}
		if field.Value == nil {
			return ""
		}
		return strings.TrimSpace(fmt.Sprintf("%v", field.Value))
	}
	return ""
}

// Result is a recorded test result.
type Result struct {
	Hash    string `json:"hash"`
	RunID   int    `json:"run_id"`
	CaseID  int    `json:"case_id"`
	Status  string `json:"status"`
	Comment string `json:"comment"`
}

// ResultPayload is the body for creating a result in a run.
type ResultPayload struct {
	CaseID  int    `json:"case_id"`
	Status  string `json:"status"`
	Comment string `json:"comment,omitempty"`
}

package model

import (
	"encoding/json"
	"fmt"
)

// TransactionTypeComment is the transaction type carrying general (non-inline)
// comments on a revision.
const TransactionTypeComment = "core:comment"

// Transaction is one recorded action on a revision. The exporter only reads
// core:comment transactions, which link a revision to a comment record.
type Transaction struct {
	ID              int64
	PHID            string
	ObjectPHID      string
	CommentPHID     string
	TransactionType string
}

// TransactionComment is a comment record: inline when attached to a changeset
// (ChangesetID > 0), general when reached through a core:comment transaction.
type TransactionComment struct {
	ID          int64
	PHID        string
	AuthorPHID  string
	ChangesetID int64 // 0 for general comments
	Content     string
	Attributes  string // serialized key-value document
	DateCreated int64
}

// IsSuggestion reports whether the comment's attributes blob marks it as a
// code suggestion: the document has an "inline.state.initial" object whose
// "hassuggestion" value is the string "true". A missing key, a value of any
// other shape, or any other hassuggestion value yields false; unrecognized
// keys are ignored. A blob that is not valid JSON is an error.
func (c TransactionComment) IsSuggestion() (bool, error) {
	if c.Attributes == "" {
		return false, nil
	}

	var att map[string]json.RawMessage
	if err := json.Unmarshal([]byte(c.Attributes), &att); err != nil {
		return false, fmt.Errorf("parse attributes of comment %d: %w", c.ID, err)
	}

	raw, ok := att["inline.state.initial"]
	if !ok {
		return false, nil
	}

	var initial map[string]any
	if err := json.Unmarshal(raw, &initial); err != nil {
		// Not an object; not a suggestion marker.
		return false, nil
	}

	return initial["hassuggestion"] == "true", nil
}

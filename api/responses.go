package api

// DecideResponse is the outcome of a scope decision.
type DecideResponse struct {
	Allowed bool `json:"allowed" description:"Whether the request is allowed"`
}

// BatchDecideResponse contains positional results for a batch decision.
type BatchDecideResponse struct {
	Results []bool `json:"results" description:"Decision results in request order"`
}

// PolicyEvalResponse is the outcome of a policy evaluation.
type PolicyEvalResponse struct {
	Allowed    bool   `json:"allowed" description:"Whether any matching policy allows the action"`
	Reason     string `json:"reason,omitempty" description:"Denial reason"`
	PolicyName string `json:"policy_name,omitempty" description:"Name of the matched policy"`
}

// UnionCheckResponse is the outcome of a union-restriction check.
type UnionCheckResponse struct {
	Restricted bool   `json:"restricted" description:"Whether an active contract restricts the action"`
	UnionCode  string `json:"union_code,omitempty" description:"Restricting union"`
	Category   string `json:"category,omitempty" description:"Restricted action category"`
	Reason     string `json:"reason,omitempty" description:"Contract clause reason"`
}

// ListResponse wraps a list of items with pagination metadata.
type ListResponse[T any] struct {
	Items  []T   `json:"items" description:"List of items"`
	Total  int64 `json:"total" description:"Total count"`
	Limit  int   `json:"limit" description:"Page size"`
	Offset int   `json:"offset" description:"Page offset"`
}

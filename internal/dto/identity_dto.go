package dto

type CreateActorCodeRequest struct {
	Code     string                 `json:"code"`
	Name     string                 `json:"name"`
	Position string                 `json:"position"`
	Role     string                 `json:"role"`
	Status   string                 `json:"status"`
	Extra    map[string]interface{} `json:"extra,omitempty"`
}

// UpdateActorCodeRequest carries the post-edit values. Empty fields keep
// the current value; Code, when set, replaces the join key itself.
type UpdateActorCodeRequest struct {
	Code     string                 `json:"code"`
	Name     string                 `json:"name"`
	Position string                 `json:"position"`
	Role     string                 `json:"role"`
	Status   string                 `json:"status"`
	Extra    map[string]interface{} `json:"extra,omitempty"`
}

type CreateUserRequest struct {
	Name     string                 `json:"name"`
	Position string                 `json:"position"`
	Role     string                 `json:"role"`
	Email    string                 `json:"email"`
	Password string                 `json:"password"`
	Extra    map[string]interface{} `json:"extra,omitempty"`
}

type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportSummary aggregates a bulk roster import. Row failures are
// recorded, never fatal to the batch.
type ImportSummary struct {
	Inserted int              `json:"inserted"`
	Updated  int              `json:"updated"`
	Errored  int              `json:"errored"`
	Errors   []ImportRowError `json:"errors"`
}

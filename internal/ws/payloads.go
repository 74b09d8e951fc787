package ws

// client → server. Rows/Cols/Mines apply to "new", R/C to "reveal" and "flag".
type Inbound struct {
	Type  string `json:"type"`
	Rows  int    `json:"rows,omitempty"`
	Cols  int    `json:"cols,omitempty"`
	Mines int    `json:"mines,omitempty"`
	R     *int   `json:"r,omitempty"`
	C     *int   `json:"c,omitempty"`
}

// server → client
type Outbound struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

package ws

const (
	// client - server
	MsgNew    = "new"
	MsgReveal = "reveal"
	MsgFlag   = "flag"
	MsgState  = "state"
	MsgPing   = "ping"

	// server - client
	MsgReady   = "ready"
	MsgCreated = "created"
	MsgUpdate  = "update"
	MsgPong    = "pong"
	MsgError   = "error"
)

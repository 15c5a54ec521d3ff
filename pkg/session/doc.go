// Package session guards concurrent access to conversation state. One turn
// per session id at a time: a ref-counted local mutex per session, plus an
// optional distributed lock when running more than one replica.
package session

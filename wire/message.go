// Package wire converts between channel messages and engine events.
//
// A message is the JSON object carried in the "d" field of a channel
// delivery. Three shapes occur on a channel:
//
//	{"uuid": "...", "text": "..."}               chat, unrelated to the grid
//	{"tick": false, "cells": "r c alive ..."}    batch of absolute cell states
//	{"row": 1, "col": 2}                         single cell toggle
//	{"tick": true}                               advance one generation
package wire

import "errors"

var (
	// ErrMalformed marks a message that cannot be turned into events. Such
	// messages are dropped before they reach the engine.
	ErrMalformed = errors.New("malformed channel message")
	// ErrUnrelated marks a well formed message that does not concern the grid.
	ErrUnrelated = errors.New("message does not concern the grid")
)

// Message is the payload published on a channel.
type Message struct {
	UUID  string `json:"uuid,omitempty"`
	Text  string `json:"text,omitempty"`
	Row   *int   `json:"row,omitempty"`
	Col   *int   `json:"col,omitempty"`
	Alive *bool  `json:"alive,omitempty"`
	Tick  bool   `json:"tick"`
	Cells string `json:"cells,omitempty"`
}

// Package demo drives the xsocket handles with small polling loops: a TCP
// acceptor that answers every received buffer, a TCP connector that reads
// and reconnects, and a multicast publisher/subscriber pair.
//
// Every loop owns the handles it creates, closes a handle before replacing
// it, and returns when its context is cancelled.
package demo

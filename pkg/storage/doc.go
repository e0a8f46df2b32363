// Package storage provides persistent storage for the recipematch bot.
// It uses BadgerDB as the embedded database and stores all values as JSON.
package storage

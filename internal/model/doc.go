package model

// Package model defines domain data structures shared across the app: the
// download task tracked by the lifecycle manager, its state enum, connection
// state, history entries and user settings values.

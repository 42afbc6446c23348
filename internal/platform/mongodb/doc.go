// Package mongodb implements the store interfaces on top of MongoDB using the
// official Go driver. It owns connection setup, index creation and the
// translation of driver errors into store errors.
package mongodb

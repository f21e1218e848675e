// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Each user action (load, analyse, translate, export, configure) has one
// entry point; state between actions is passed explicitly.
package services

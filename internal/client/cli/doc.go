// Package cli provides the interactive onboarding command-line client.
//
// It wires configuration, local storage, API services, and an interactive REPL
// modelled on the screens of the onboarding web flow: welcome, sign-in,
// sign-up, onboarding, profile, plus the operator admin and data views.
// Typical flow: restore a stored session, open the start view, and execute
// user commands.
//
// Key features:
//   - Sign up / Sign in / Sign out
//   - Step-by-step onboarding with a progress bar
//   - Admin configuration of components per step and the step count
//   - Live user list refreshed in the background
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, navigate, and runREPL for details.
package cli

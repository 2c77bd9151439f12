// Package ui contains the Bubble Tea program that renders the action picker.
// The Model type focuses on message orchestration while dedicated helpers own
// navigation, input, rendering, and backend updates.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function.
//   - Filter editing (input.go) rewrites the keyword prompt and hands the text
//     to the picker controller, which rebuilds the category tree from scratch
//     and re-locates the remembered selection.
//   - Navigation (navigation.go) moves the row cursor, folds categories and
//     forwards confirm, cancel and favorite gestures to the controller.
//
// State ownership:
//   - Selection and activation live in internal/picker.Controller. The model
//     only mirrors the controller's tree as flattened rows in
//     internal/ui/state.List, with fold state kept by category path.
//   - An activated handler is queued on the internal/ui/command bus; its
//     runner.Result ends the program.
//
// Backend interactions:
//   - A backend.Watcher streams catalog reloads and tmux context changes. The
//     dispatcher applies them to the action store and the model refreshes the
//     open tree.
package ui

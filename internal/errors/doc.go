// Package errors provides structured, actionable error messages for vimg.
//
// Each error has a unique code (e.g., "E020") that maps to:
//   - A short message describing the error
//   - A detailed explanation
//   - A documentation URL
//
// # Error Categories
//
//   - runtime: image load failures observed while a component is mounted
//   - validation: invalid component props
//   - placeholder: placeholder source, decode and encode failures
//   - config: vimg.json problems
//   - cli: command line usage errors
//
// # Usage
//
//	err := errors.New("E020").
//	    WithDetail("no such key: hero.jpg").
//	    WithSuggestion("Check placeholder.dir in vimg.json")
//
//	fmt.Println(err.Format())
//
// Registered templates double as sentinels for errors.Is:
//
//	if stderrors.Is(err, errors.New("E020")) { ... }
package errors

/*
Package dsl provides a Go DSL for programmatically constructing flows.

It allows developers to define flows with a fluent builder instead of editor JSON or YAML
files. This is particularly useful for unit testing, fixtures and generated flows.

Example usage:

	b := dsl.New("welcome")

	b.Add("start").Start().Go("ask_name")

	b.Add("ask_name").
		Question("What is your name?").
		SaveTo("user_name").
		Go("greet")

	b.Add("greet").
		Message("Nice to meet you, {{user_name}}!")

	flow := b.Build()
	res, _ := flowguard.Validate(flow)
*/
package dsl

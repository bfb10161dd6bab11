// Package services holds the client-side application services the CLI
// calls. They validate user input before anything reaches the network and
// translate failures into messages fit for the terminal.
package services

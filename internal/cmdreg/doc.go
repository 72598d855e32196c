// Package cmdreg defines the contract every beer subcommand implements and
// the registry the entrypoint dispatches through. Commands are registered
// explicitly at startup; a broken entry is rejected when it is registered
// rather than when it is selected.
package cmdreg

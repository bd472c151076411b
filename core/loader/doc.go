// Package loader provides the registry of ingestible datasets.
//
// Each dataset implements the Feature interface. The command line registers
// every dataset with a Manager and runs the one named by its argument.
//
// # Feature Interface
//
//	type Feature interface {
//	    Name() string
//	    Run(ctx context.Context) error
//	}
//
// # Manager
//
// The Manager struct holds the registry of available features. It handles:
//   - Registration of features via Register()
//   - Lookup and execution via Run()
//
// New datasets are added by implementing a row mapper and registering it here.
package loader

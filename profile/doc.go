// Package profile adds runtime profiling flags to the mocktree CLI.
//
// It writes CPU, heap and allocs profiles, which is enough to investigate
// slow reconciliation of large mocks or schemas:
//
//	cfg := profile.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//
//	err := cfg.NewProfiler().Run(func() error {
//		return rootCmd.Execute()
//	})
//
// Users can then enable profiling via flags like --cpu-profile=cpu.prof.
package profile

// Basic usage
//
//	spec := walk.NewFilterSpec([]string{"swift"}, []string{"private", "Pods"})
//	summary, err := walk.Replace("src", spec, `Constants\.c(\d+)\.rawValue`, "Constants.c$1")
//	if err != nil {
//		// The pattern or template is invalid; no file was touched.
//		log.Fatal(err)
//	}
//	fmt.Printf("%d rewritten, %d failed\n", summary.Rewritten, summary.Failed)
//
// Step by step, with logging and per-file reporting
//
//	rule, err := walk.Compile(`foo(\d)`, "bar$1")
//	if err != nil {
//		log.Fatal(err)
//	}
//	paths, stats := walk.NewWalker(spec, logger).Walk("src")
//	engine := walk.NewEngine(walk.EngineOptions{
//		Logger: logger,
//		OnResult: func(res walk.FileResult) {
//			if res.Err != nil {
//				fmt.Fprintln(os.Stderr, res.Err)
//			}
//		},
//	})
//	summary := engine.Apply(paths, rule)
//
// Files whose content would not change are never written, so running the
// same rule twice rewrites nothing the second time.

package walk

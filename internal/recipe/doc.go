// Package recipe implements the build lifecycle for one native package.
//
// A [Lifecycle] threads the state of a single build invocation through four
// ordered phases: source acquisition, configure/compile, install, and
// artifact registration. Acquisition downloads a tag-qualified archive and
// materializes the build tree in a deterministic subfolder; the build and
// install phases delegate to an external build-system [Driver]; artifact
// registration scans the staging location for the library files the package
// provides to dependents.
//
// Phases are strictly ordered and each failure class is terminal for the
// invocation: nothing is caught and retried internally, and the wrapped
// sentinel ([ErrAcquisition], [ErrConfiguration], [ErrCompilation],
// [ErrInstallation]) propagates to the caller. The one permitted re-entry
// point is [Describe], which may run against a staging location left by a
// prior invocation.
//
// Example usage:
//
//	lc, err := recipe.New(desc, recipe.Config{
//	    Driver:   driver,
//	    Getter:   fetch.NewClient(),
//	    WorkRoot: work,
//	    Staging:  stage,
//	})
//	if err != nil {
//	    return err
//	}
//
//	if _, err := lc.FetchSource(ctx); err != nil {
//	    return err
//	}
//
//	opts := recipe.NewOptions()
//	opts.Set(recipe.OptionStaticLib, "1")
//
//	if _, err := lc.Build(ctx, opts); err != nil {
//	    return err
//	}
//	if err := lc.Package(ctx); err != nil {
//	    return err
//	}
//
//	artifacts, err := lc.DescribeArtifacts()
package recipe

// Package version reports the build version of an application embedding
// lazyseq. config.Settings uses it as the default service version that
// observability attaches to exported telemetry.
//
//	go build -ldflags "-X github.com/kbukum/lazyseq/version.Version=1.0.0"
package version

// Package version reports the seqpipe build identity attached to exported
// telemetry as service.version.
//
// The release string is set at link time:
//
//	go build -ldflags "-X github.com/kbukum/seqpipe/version.Version=1.2.0"
//
// Without it the VCS revision recorded by the go toolchain is used.
package version

package version

// GitCommit is set at build time with
// -ldflags "-X github.com/testground/paramcase/pkg/version.GitCommit=<sha>".
var GitCommit string

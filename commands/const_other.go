//go:build !linux && !darwin && !windows

package commands

const (
	_etc = "/usr/local/etc/warc-tracker"
	_var = "/usr/local/var/warc-tracker"

	DEFAULT_WORKDIR     = _var
	DEFAULT_CREDENTIALS = _etc + "/.google/credentials.json"
)

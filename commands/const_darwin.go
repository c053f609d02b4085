package commands

const (
	_etc = "/usr/local/etc/com.github.warctools"
	_var = "/usr/local/var/com.github.warctools"

	DEFAULT_WORKDIR     = _var + "/warc-tracker"
	DEFAULT_CREDENTIALS = _etc + "/warc-tracker/.google/credentials.json"
)

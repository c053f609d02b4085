package commands

const (
	_etc = `C:\ProgramData\warc-tracker`
	_var = `C:\ProgramData\warc-tracker\var`

	DEFAULT_WORKDIR     = _var
	DEFAULT_CREDENTIALS = _etc + `\.google\credentials.json`
)

package command

import "errors"

var ErrUndefinedCommand = errors.New("undefined command")

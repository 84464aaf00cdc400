package scene

import (
	"errors"
)

var ErrEmpty = errors.New("scene: nothing drawn")

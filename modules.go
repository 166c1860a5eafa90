package qccodec

import (
	"github.com/specialistvlad/qccodec/internal/engines/orca"
	"github.com/specialistvlad/qccodec/internal/engines/terachem"
	"github.com/specialistvlad/qccodec/internal/registry"
)

// coreModules is the definitive list of all engines compiled into the codec.
var coreModules = []registry.Module{
	&orca.Module{},
	&terachem.Module{},
}

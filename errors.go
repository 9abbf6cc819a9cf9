package gbufview

import "errors"

// ErrNilCompiler is returned when a pipeline has to be built but no
// Compiler was configured.
var ErrNilCompiler = errors.New("gbufview: nil compiler")

// ErrNilGeometry is returned by NewCompositor without a GeometryRegistry.
var ErrNilGeometry = errors.New("gbufview: nil geometry registry")

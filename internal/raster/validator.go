package raster

const MaxDimension = 32768

func ValidateDimensions(width, height, channels int, operation string) error {
	if width <= 0 || height <= 0 {
		return InvalidDimensions("%dx%d for operation: %s", width, height, operation)
	}

	if width > MaxDimension || height > MaxDimension {
		return InvalidDimensions("%dx%d exceed maximum size for operation: %s", width, height, operation)
	}

	if channels != 1 && channels != 3 {
		return InvalidDimensions("%d channels for operation: %s (want 1 or 3)", channels, operation)
	}

	return nil
}

// ValidateGridForOperation rejects nil grids and grids smaller than
// minWidth x minHeight.
func ValidateGridForOperation(g *Grid, minWidth, minHeight int, operation string) error {
	if g == nil {
		return InvalidDimensions("grid is nil for operation: %s", operation)
	}

	if err := ValidateDimensions(g.width, g.height, g.channels, operation); err != nil {
		return err
	}

	if g.width < minWidth || g.height < minHeight {
		return InvalidDimensions("grid %dx%d smaller than %dx%d window for operation: %s",
			g.width, g.height, minWidth, minHeight, operation)
	}

	return nil
}

func ValidateCoordinates(x, y, width, height int, operation string) error {
	if y < 0 || y >= height {
		return InvalidDimensions("row %d out of bounds [0, %d) for operation: %s", y, height, operation)
	}

	if x < 0 || x >= width {
		return InvalidDimensions("col %d out of bounds [0, %d) for operation: %s", x, width, operation)
	}

	return nil
}

func ValidateChannel(channel, channels int, operation string) error {
	if channel < 0 || channel >= channels {
		return InvalidDimensions("channel %d out of bounds [0, %d) for operation: %s", channel, channels, operation)
	}

	return nil
}

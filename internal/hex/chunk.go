package hex

// Чанки замощают плоскость тайлов решёткой "гекс из гексов": чанк радиуса R
// покрывает все тайлы на расстоянии не более R от своего центрального тайла.
// Базисные векторы решётки центров: b1 = (2R+1, -R), b2 = (R, R+1);
// определитель решётки равен 3R²+3R+1 — ровно числу тайлов в чанке,
// поэтому замощение точное, без дыр и перекрытий.

// TilesPerChunk возвращает число тайлов в чанке радиуса radius: 3R²+3R+1
func TilesPerChunk(radius int) int {
	return 3*radius*radius + 3*radius + 1
}

// ChunkCenter возвращает тайловую координату центрального тайла чанка
func ChunkCenter(chunk Axial, radius int) Axial {
	return Axial{
		Q: chunk.Q*(2*radius+1) + chunk.R*radius,
		R: -chunk.Q*radius + chunk.R*(radius+1),
	}
}

// ChunkOf возвращает координату чанка, которому принадлежит тайл.
// Замкнутая алгебраическая форма (обратное преобразование к ChunkCenter),
// без перебора и без запросов к размещённым объектам.
func ChunkOf(tile Axial, radius int) Axial {
	shift := 3*radius + 2
	area := TilesPerChunk(radius)

	c := tile.Cube()
	xh := floorDiv(c.Y+shift*c.X, area)
	yh := floorDiv(c.Z+shift*c.Y, area)
	zh := floorDiv(c.X+shift*c.Z, area)

	return Axial{
		Q: floorDiv(1+xh-yh, 3),
		R: floorDiv(1+yh-zh, 3),
	}
}

// floorDiv делит с округлением к минус бесконечности
// (в отличие от целочисленного деления Go, которое округляет к нулю)
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

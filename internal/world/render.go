package world

import "github.com/annel0/hex-world/internal/hex"

// TileSink получает размещения тайлов и уничтожения чанков.
// Реализуется внешним рендером. Движок не хранит дескрипторы созданных
// представлений: представления адресуются координатой чанка-владельца,
// и при DestroyChunk приёмник уничтожает всё, что ей принадлежит.
type TileSink interface {
	// PlaceTile создаёт представление тайла указанного типа и цвета
	PlaceTile(chunk hex.Axial, tile hex.Axial, typ TileType, color Color)
	// DestroyChunk уничтожает все представления, принадлежащие чанку
	DestroyChunk(chunk hex.Axial)
}

// NopSink — приёмник-заглушка для headless-запуска и бенчмарков
type NopSink struct{}

func (NopSink) PlaceTile(hex.Axial, hex.Axial, TileType, Color) {}

func (NopSink) DestroyChunk(hex.Axial) {}

package entity

import "image"

// Region хранит максимальную 8-связную область пикселей одного цвета.
// Pixels[0] содержит затравочный пиксель, найденный построчным обходом.
type Region struct {
	Color  Color
	Pixels []image.Point
}

// Size возвращает число пикселей области.
func (r *Region) Size() int {
	return len(r.Pixels)
}

// Seed возвращает первый пиксель области.
func (r *Region) Seed() (image.Point, error) {
	if len(r.Pixels) == 0 {
		return image.Point{}, ErrEmptyRegion
	}
	return r.Pixels[0], nil
}

// Bounds возвращает ограничивающий прямоугольник (Max не включается).
func (r *Region) Bounds() image.Rectangle {
	if len(r.Pixels) == 0 {
		return image.Rectangle{}
	}
	minX, minY := r.Pixels[0].X, r.Pixels[0].Y
	maxX, maxY := minX, minY
	for _, p := range r.Pixels[1:] {
		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}

// Center возвращает середину ограничивающего прямоугольника.
func (r *Region) Center() image.Point {
	b := r.Bounds()
	return image.Pt((b.Min.X+b.Max.X-1)/2, (b.Min.Y+b.Max.Y-1)/2)
}

// Mask строит битовую маску принадлежности в координатах Bounds.
func (r *Region) Mask() *RegionMask {
	b := r.Bounds()
	m := &RegionMask{rect: b, bits: make([]bool, b.Dx()*b.Dy())}
	for _, p := range r.Pixels {
		m.bits[(p.Y-b.Min.Y)*b.Dx()+p.X-b.Min.X] = true
	}
	return m
}

// RegionMask отвечает на вопрос «принадлежит ли точка области».
type RegionMask struct {
	rect image.Rectangle
	bits []bool
}

// Contains сообщает, входит ли точка в область.
func (m *RegionMask) Contains(p image.Point) bool {
	if !p.In(m.rect) {
		return false
	}
	return m.bits[(p.Y-m.rect.Min.Y)*m.rect.Dx()+p.X-m.rect.Min.X]
}

package vision

import (
	"image"

	"paint-bot/internal/domain/entity"
)

// Смещения восьми соседей, включая диагонали.
var (
	neighborDX = [8]int{-1, -1, -1, 0, 0, 1, 1, 1}
	neighborDY = [8]int{-1, 0, 1, -1, 1, -1, 0, 1}
)

// DetectRegions разбивает буфер на 8-связные области точно совпадающего цвета.
// Область крупная, если в ней не меньше threshold пикселей.
// Обход однопоточный: карта посещений принадлежит одному вызову.
func DetectRegions(buf *entity.PixelBuffer, threshold int) (large, small []entity.Region) {
	w, h := buf.Width, buf.Height
	visited := make([]bool, w*h)
	queue := make([]int, 0, 1024)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			start := y*w + x
			if visited[start] {
				continue
			}

			current := buf.Pix[start]
			visited[start] = true
			queue = append(queue[:0], start)
			var members []image.Point

			for head := 0; head < len(queue); head++ {
				idx := queue[head]
				cx, cy := idx%w, idx/w
				members = append(members, image.Pt(cx, cy))

				for k := range 8 {
					nx, ny := cx+neighborDX[k], cy+neighborDY[k]
					if nx < 0 || nx >= w || ny < 0 || ny >= h {
						continue
					}
					nIdx := ny*w + nx
					// Отмечаем при постановке в очередь, чтобы не добавить пиксель дважды.
					if !visited[nIdx] && buf.Pix[nIdx] == current {
						visited[nIdx] = true
						queue = append(queue, nIdx)
					}
				}
			}

			region := entity.Region{Color: current, Pixels: members}
			if len(members) >= threshold {
				large = append(large, region)
			} else {
				small = append(small, region)
			}
		}
	}
	return large, small
}

// sizeThreshold переводит долю от площади в число пикселей.
func sizeThreshold(buf *entity.PixelBuffer, fraction float64) int {
	return int(fraction * float64(buf.Len()))
}

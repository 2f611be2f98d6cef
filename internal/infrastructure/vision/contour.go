package vision

import (
	"context"
	"image"

	"fragment-analyzer/internal/domain/entity"
)

// neighbours 8-окрестность по часовой стрелке (ось Y вниз): E, SE, S, SW, W, NW, N, NE.
var neighbours = [8]image.Point{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

const dirWest = 4

// ExtractRegions находит только внешние контуры: области внутри дыр других областей
// пропускаются, дыры не дают собственных контуров.
func (s *NativeSegmenter) ExtractRegions(ctx context.Context, mask *entity.BinaryMask) ([]entity.Region, error) {
	if err := checkMask(mask); err != nil {
		return nil, err
	}
	w, h := mask.Width, mask.Height

	labels, starts := labelComponents(mask)
	exterior := exteriorBackground(mask)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	regions := make([]entity.Region, 0, len(starts))
	for i, st := range starts {
		// Левый сосед первой точки компоненты всегда фон; если это не внешний фон,
		// компонента лежит в дыре другой области.
		if st.X > 0 && !exterior[st.Y*w+st.X-1] {
			continue
		}
		boundary := traceBoundary(labels, w, h, int32(i+1), st)
		regions = append(regions, entity.NewRegion(compressChain(boundary)))
	}
	return regions, nil
}

// labelComponents размечает 8-связные компоненты объекта. starts[i] первая в
// порядке развёртки точка компоненты с меткой i+1.
func labelComponents(mask *entity.BinaryMask) ([]int32, []image.Point) {
	w, h := mask.Width, mask.Height
	labels := make([]int32, w*h)
	var starts []image.Point
	var stack []int

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if mask.Pix[idx] == 0 || labels[idx] != 0 {
				continue
			}
			starts = append(starts, image.Pt(x, y))
			label := int32(len(starts))
			labels[idx] = label
			stack = append(stack[:0], idx)
			for len(stack) > 0 {
				ci := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				cx, cy := ci%w, ci/w
				for _, d := range neighbours {
					nx, ny := cx+d.X, cy+d.Y
					if nx < 0 || ny < 0 || nx >= w || ny >= h {
						continue
					}
					ni := ny*w + nx
					if mask.Pix[ni] != 0 && labels[ni] == 0 {
						labels[ni] = label
						stack = append(stack, ni)
					}
				}
			}
		}
	}
	return labels, starts
}

// exteriorBackground отмечает фон, 4-связно достижимый от края изображения.
func exteriorBackground(mask *entity.BinaryMask) []bool {
	w, h := mask.Width, mask.Height
	ext := make([]bool, w*h)
	var stack []int

	push := func(x, y int) {
		i := y*w + x
		if mask.Pix[i] == 0 && !ext[i] {
			ext[i] = true
			stack = append(stack, i)
		}
	}
	for x := 0; x < w; x++ {
		push(x, 0)
		push(x, h-1)
	}
	for y := 0; y < h; y++ {
		push(0, y)
		push(w-1, y)
	}

	for len(stack) > 0 {
		ci := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cx, cy := ci%w, ci/w
		if cx > 0 {
			push(cx-1, cy)
		}
		if cx < w-1 {
			push(cx+1, cy)
		}
		if cy > 0 {
			push(cx, cy-1)
		}
		if cy < h-1 {
			push(cx, cy+1)
		}
	}
	return ext
}

// traceBoundary обходит внешнюю границу компоненты методом Мура, начиная с её
// верхней левой точки. Обход заканчивается, когда из стартовой точки снова
// делается первый шаг.
func traceBoundary(labels []int32, w, h int, label int32, start image.Point) []image.Point {
	inside := func(p image.Point) bool {
		return p.X >= 0 && p.Y >= 0 && p.X < w && p.Y < h && labels[p.Y*w+p.X] == label
	}

	pts := []image.Point{start}
	cur, back := start, dirWest
	var first image.Point
	haveFirst := false

	for steps := 0; steps < 4*w*h+8; steps++ {
		next, nb, ok := mooreStep(inside, cur, back)
		if !ok {
			break // одиночный пиксель
		}
		if haveFirst && cur == start && next == first {
			break
		}
		if !haveFirst {
			first, haveFirst = next, true
		}
		pts = append(pts, next)
		cur, back = next, nb
	}

	if n := len(pts); n > 1 && pts[n-1] == pts[0] {
		pts = pts[:n-1]
	}
	return pts
}

// mooreStep ищет следующую точку границы по часовой стрелке от направления back.
// Возвращает новую точку и направление от неё на последний просмотренный фон.
func mooreStep(inside func(image.Point) bool, cur image.Point, back int) (image.Point, int, bool) {
	prev := cur.Add(neighbours[back])
	for k := 1; k <= 8; k++ {
		p := cur.Add(neighbours[(back+k)%8])
		if inside(p) {
			return p, direction(prev.Sub(p)), true
		}
		prev = p
	}
	return cur, back, false
}

func direction(d image.Point) int {
	for i, n := range neighbours {
		if n == d {
			return i
		}
	}
	return dirWest
}

// compressChain оставляет только точки, где меняется направление обхода.
func compressChain(pts []image.Point) []image.Point {
	n := len(pts)
	if n < 3 {
		return pts
	}
	out := make([]image.Point, 0, n)
	for i := 0; i < n; i++ {
		in := pts[i].Sub(pts[(i+n-1)%n])
		outStep := pts[(i+1)%n].Sub(pts[i])
		if in != outStep {
			out = append(out, pts[i])
		}
	}
	if len(out) == 0 {
		return pts[:1]
	}
	return out
}

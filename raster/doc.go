// Package raster turns external obstacle sources into bitmaps from which a
// grid.Grid snapshot is built.
//
// Sources:
//
//   - Images: FromImage classifies pixels with a predicate; IsBlack, the
//     default, treats opaque pure black as a wall.
//   - ASCII maps: ParseASCII reads '#' walls, '.' floor and optional 'S'
//     and 'G' endpoint markers.
//
// A Bitmap is mutable (painting walls between searches) while the Grid built
// from it is not: call Grid again after editing to get a new snapshot.
// Resample changes the resolution with nearest-neighbour sampling, the same
// way a pixel canvas is resized without smoothing.
package raster

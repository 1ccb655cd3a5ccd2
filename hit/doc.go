// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package hit provides pointer hit targets for UI nodes.
//
// Two targets are provided:
//
//   - [Rect]: an invisible rectangle that catches input but draws nothing
//   - [Polygon]: an image whose clickable area is a polygon, tested with
//     the non-zero winding rule after mapping the screen point into the
//     polygon's local space
//
// [Raycaster] collects the targets of one node and answers which one a
// pointer lands on.
package hit

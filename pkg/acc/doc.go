/*
 * Copyright 2025 SREDiag Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package acc describes the three shared-memory pages published by
// Assetto Corsa Competizione: physics, graphics and static.
//
// The layouts follow the vendor's SharedFileOut.h (pack(4), little-endian,
// wchar_t as UTF-16LE). Records are decoded from a byte copy of a page, never
// from the mapping itself:
//
//	page := make([]byte, acc.GraphicsPageSize)
//	// fill page from shared memory ...
//	g, err := acc.DecodeGraphics(page)
//	if err != nil {
//		return err
//	}
//	fmt.Println(g.Penalty, g.Flag)
//
// Every record can also be viewed as a map keyed by the field names the
// simulator tooling traditionally uses, see Graphics.Fields.
package acc

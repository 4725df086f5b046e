// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// QR and Micro QR versions: total codewords, first two alignment
// pattern centres after 6, and number of blocks and check bytes per
// block at each level.  A level with no blocks is not supported.
var qrtab = [M4]struct {
	bytes int
	align [2]uint8
	level [4]level
}{
	{26, [2]uint8{0, 0}, [4]level{{1, 7}, {1, 10}, {1, 13}, {1, 17}}}, // 1
	{44, [2]uint8{18, 0}, [4]level{{1, 10}, {1, 16}, {1, 22}, {1, 28}}},
	{70, [2]uint8{22, 0}, [4]level{{1, 15}, {1, 26}, {2, 18}, {2, 22}}},
	{100, [2]uint8{26, 0}, [4]level{{1, 20}, {2, 18}, {2, 26}, {4, 16}}},
	{134, [2]uint8{30, 0}, [4]level{{1, 26}, {2, 24}, {4, 18}, {4, 22}}}, // 5
	{172, [2]uint8{34, 0}, [4]level{{2, 18}, {4, 16}, {4, 24}, {4, 28}}},
	{196, [2]uint8{22, 38}, [4]level{{2, 20}, {4, 18}, {6, 18}, {5, 26}}},
	{242, [2]uint8{24, 42}, [4]level{{2, 24}, {4, 22}, {6, 22}, {6, 26}}},
	{292, [2]uint8{26, 46}, [4]level{{2, 30}, {5, 22}, {8, 20}, {8, 24}}},
	{346, [2]uint8{28, 50}, [4]level{{4, 18}, {5, 26}, {8, 24}, {8, 28}}}, // 10
	{404, [2]uint8{30, 54}, [4]level{{4, 20}, {5, 30}, {8, 28}, {11, 24}}},
	{466, [2]uint8{32, 58}, [4]level{{4, 24}, {8, 22}, {10, 26}, {11, 28}}},
	{532, [2]uint8{34, 62}, [4]level{{4, 26}, {9, 22}, {12, 24}, {16, 22}}},
	{581, [2]uint8{26, 46}, [4]level{{4, 30}, {9, 24}, {16, 20}, {16, 24}}},
	{655, [2]uint8{26, 48}, [4]level{{6, 22}, {10, 24}, {12, 30}, {18, 24}}}, // 15
	{733, [2]uint8{26, 50}, [4]level{{6, 24}, {10, 28}, {17, 24}, {16, 30}}},
	{815, [2]uint8{30, 54}, [4]level{{6, 28}, {11, 28}, {16, 28}, {19, 28}}},
	{901, [2]uint8{30, 56}, [4]level{{6, 30}, {13, 26}, {18, 28}, {21, 28}}},
	{991, [2]uint8{30, 58}, [4]level{{7, 28}, {14, 26}, {21, 26}, {25, 26}}},
	{1085, [2]uint8{34, 62}, [4]level{{8, 28}, {16, 26}, {20, 30}, {25, 28}}}, // 20
	{1156, [2]uint8{28, 50}, [4]level{{8, 28}, {17, 26}, {23, 28}, {25, 30}}},
	{1258, [2]uint8{26, 50}, [4]level{{9, 28}, {17, 28}, {23, 30}, {34, 24}}},
	{1364, [2]uint8{30, 54}, [4]level{{9, 30}, {18, 28}, {25, 30}, {30, 30}}},
	{1474, [2]uint8{28, 54}, [4]level{{10, 30}, {20, 28}, {27, 30}, {32, 30}}},
	{1588, [2]uint8{32, 58}, [4]level{{12, 26}, {21, 28}, {29, 30}, {35, 30}}}, // 25
	{1706, [2]uint8{30, 58}, [4]level{{12, 28}, {23, 28}, {34, 28}, {37, 30}}},
	{1828, [2]uint8{34, 62}, [4]level{{12, 30}, {25, 28}, {34, 30}, {40, 30}}},
	{1921, [2]uint8{26, 50}, [4]level{{13, 30}, {26, 28}, {35, 30}, {42, 30}}},
	{2051, [2]uint8{30, 54}, [4]level{{14, 30}, {28, 28}, {38, 30}, {45, 30}}},
	{2185, [2]uint8{26, 52}, [4]level{{15, 30}, {29, 28}, {40, 30}, {48, 30}}}, // 30
	{2323, [2]uint8{30, 56}, [4]level{{16, 30}, {31, 28}, {43, 30}, {51, 30}}},
	{2465, [2]uint8{34, 60}, [4]level{{17, 30}, {33, 28}, {45, 30}, {54, 30}}},
	{2611, [2]uint8{30, 58}, [4]level{{18, 30}, {35, 28}, {48, 30}, {57, 30}}},
	{2761, [2]uint8{34, 62}, [4]level{{19, 30}, {37, 28}, {51, 30}, {60, 30}}},
	{2876, [2]uint8{30, 54}, [4]level{{19, 30}, {38, 28}, {53, 30}, {63, 30}}}, // 35
	{3034, [2]uint8{24, 50}, [4]level{{20, 30}, {40, 28}, {56, 30}, {66, 30}}},
	{3196, [2]uint8{28, 54}, [4]level{{21, 30}, {43, 28}, {59, 30}, {70, 30}}},
	{3362, [2]uint8{32, 58}, [4]level{{22, 30}, {45, 28}, {62, 30}, {74, 30}}},
	{3532, [2]uint8{26, 54}, [4]level{{24, 30}, {47, 28}, {65, 30}, {77, 30}}},
	{3706, [2]uint8{30, 58}, [4]level{{25, 30}, {49, 28}, {68, 30}, {81, 30}}}, // 40
	{5, [2]uint8{}, [4]level{{1, 2}, {}, {}, {}}},                            // M1
	{10, [2]uint8{}, [4]level{{1, 5}, {1, 6}, {}, {}}},                       // M2
	{17, [2]uint8{}, [4]level{{1, 6}, {1, 8}, {}, {}}},                       // M3
	{24, [2]uint8{}, [4]level{{1, 8}, {1, 10}, {1, 14}, {}}},                 // M4
}

// Character count field lengths for numeric, alphanumeric, byte and
// kanji modes in QR versions 1-9, 10-26 and 27-40, and Micro QR
// versions M1-M4.  Zero means the mode is not available.
var (
	qrCount = [3][4]byte{
		{10, 9, 8, 8},
		{12, 11, 16, 10},
		{14, 13, 16, 12},
	}
	microCount = [4][4]byte{
		{3, 0, 0, 0},
		{4, 3, 0, 0},
		{5, 4, 4, 3},
		{6, 5, 5, 4},
	}
)

// rMQR versions in version indicator order: height, width, total
// codewords, blocks at levels M and H, and character count field
// lengths.
var rtab = [32]struct {
	height, width int
	bytes         int
	m, h          level
	count         [4]byte
}{
	{7, 43, 13, level{1, 7}, level{1, 10}, [4]byte{4, 3, 3, 2}},
	{7, 59, 21, level{1, 9}, level{1, 14}, [4]byte{5, 5, 4, 3}},
	{7, 77, 32, level{1, 12}, level{1, 22}, [4]byte{6, 5, 5, 4}},
	{7, 99, 44, level{1, 16}, level{1, 30}, [4]byte{7, 6, 5, 5}},
	{7, 139, 68, level{1, 24}, level{2, 22}, [4]byte{7, 6, 6, 5}},
	{9, 43, 21, level{1, 9}, level{1, 14}, [4]byte{5, 5, 4, 3}},
	{9, 59, 33, level{1, 12}, level{1, 22}, [4]byte{6, 5, 5, 4}},
	{9, 77, 49, level{1, 18}, level{2, 16}, [4]byte{7, 6, 5, 5}},
	{9, 99, 66, level{1, 24}, level{2, 22}, [4]byte{7, 6, 6, 5}},
	{9, 139, 99, level{2, 18}, level{3, 22}, [4]byte{8, 7, 6, 6}},
	{11, 27, 15, level{1, 8}, level{1, 10}, [4]byte{4, 4, 3, 2}},
	{11, 43, 31, level{1, 12}, level{1, 20}, [4]byte{6, 5, 5, 4}},
	{11, 59, 47, level{1, 16}, level{2, 16}, [4]byte{7, 6, 5, 5}},
	{11, 77, 67, level{1, 24}, level{2, 22}, [4]byte{7, 6, 6, 5}},
	{11, 99, 89, level{2, 16}, level{2, 30}, [4]byte{8, 7, 6, 6}},
	{11, 139, 132, level{2, 24}, level{3, 30}, [4]byte{8, 7, 7, 6}},
	{13, 27, 21, level{1, 9}, level{1, 14}, [4]byte{5, 5, 4, 3}},
	{13, 43, 41, level{1, 14}, level{1, 28}, [4]byte{6, 6, 5, 5}},
	{13, 59, 60, level{1, 22}, level{2, 20}, [4]byte{7, 6, 6, 5}},
	{13, 77, 85, level{2, 16}, level{2, 28}, [4]byte{7, 7, 6, 6}},
	{13, 99, 113, level{2, 20}, level{3, 26}, [4]byte{8, 7, 7, 6}},
	{13, 139, 166, level{3, 20}, level{4, 28}, [4]byte{8, 8, 7, 7}},
	{15, 43, 51, level{1, 18}, level{2, 18}, [4]byte{7, 6, 6, 5}},
	{15, 59, 74, level{1, 26}, level{2, 24}, [4]byte{7, 7, 6, 5}},
	{15, 77, 103, level{2, 18}, level{3, 24}, [4]byte{8, 7, 7, 6}},
	{15, 99, 136, level{2, 24}, level{4, 22}, [4]byte{8, 7, 7, 6}},
	{15, 139, 199, level{3, 24}, level{5, 26}, [4]byte{9, 8, 7, 7}},
	{17, 43, 61, level{1, 22}, level{2, 20}, [4]byte{7, 6, 6, 5}},
	{17, 59, 88, level{2, 16}, level{2, 30}, [4]byte{8, 7, 6, 6}},
	{17, 77, 122, level{2, 22}, level{3, 28}, [4]byte{8, 7, 7, 6}},
	{17, 99, 160, level{3, 20}, level{4, 26}, [4]byte{8, 8, 7, 6}},
	{17, 139, 232, level{4, 20}, level{6, 26}, [4]byte{9, 8, 8, 7}},
}

// rMQR alignment pattern centre columns by symbol width.
var ralign = map[int][]int{
	27:  nil,
	43:  {21},
	59:  {19, 39},
	77:  {25, 51},
	99:  {23, 49, 75},
	139: {27, 55, 83, 111},
}

// vtab is the version table, indexed by Version.
var vtab [MaxRMQR + 1]version

func init() {
	for v := MinVersion; v <= M4; v++ {
		t := &qrtab[v-1]
		vt := &vtab[v]
		vt.bytes = t.bytes
		vt.level = t.level
		if v >= M1 {
			vt.width = int(v-M1)*2 + 11
			vt.count = microCount[v-M1]
		} else {
			vt.width = int(v)*4 + 17
			vt.count = qrCount[qrClass(v)]
			if a := int(t.align[0]); a != 0 {
				stride := int(t.align[1]) - a
				if t.align[1] == 0 {
					stride = vt.width
				}
				vt.align = append(vt.align, 6)
				for ; a <= vt.width-7; a += stride {
					vt.align = append(vt.align, a)
				}
			}
		}
		vt.height = vt.width
	}
	for i := range rtab {
		t := &rtab[i]
		vt := &vtab[R7x43+Version(i)]
		vt.width, vt.height = t.width, t.height
		vt.bytes = t.bytes
		vt.level[M], vt.level[H] = t.m, t.h
		vt.count = t.count
		vt.align = ralign[t.width]
	}
}

package emu

// astrocadeMasterPalette holds every color the Astrocade can produce as
// ARGB. Palette registers select entries by index: the high 5 bits pick a
// hue, the low 3 bits the intensity.
var astrocadeMasterPalette = [256]uint32{
	0xFF000000, 0xFF242424, 0xFF484848, 0xFF6D6D6D, 0xFF919191, 0xFFB6B6B6, 0xFFDADADA, 0xFFFFFFFF,
	0xFF2500BB, 0xFF4900E0, 0xFF6E11FF, 0xFF9235FF, 0xFFB75AFF, 0xFFDB7EFF, 0xFFFFA3FF, 0xFFFFC7FF,
	0xFF4900B0, 0xFF6D00D5, 0xFF9201F9, 0xFFB625FF, 0xFFDA4AFF, 0xFFFF6EFF, 0xFFFF92FF, 0xFFFFB7FF,
	0xFF6A009F, 0xFF8E00C3, 0xFFB300E7, 0xFFD718FF, 0xFFFB3CFF, 0xFFFF61FF, 0xFFFF85FF, 0xFFFFA9FF,
	0xFF870087, 0xFFAB00AB, 0xFFD000D0, 0xFFF40EF4, 0xFFFF32FF, 0xFFFF56FF, 0xFFFF7BFF, 0xFFFF9FFF,
	0xFF9F006A, 0xFFC3008E, 0xFFE700B3, 0xFFFF07D7, 0xFFFF2CFB, 0xFFFF50FF, 0xFFFF74FF, 0xFFFF99FF,
	0xFFB00049, 0xFFD5006D, 0xFFF90092, 0xFFFF05B6, 0xFFFF29DA, 0xFFFF4DFF, 0xFFFF72FF, 0xFFFF96FF,
	0xFFBB0025, 0xFFE00049, 0xFFFF006E, 0xFFFF0692, 0xFFFF2AB7, 0xFFFF4FDB, 0xFFFF73FF, 0xFFFF98FF,
	0xFFBF0000, 0xFFE30024, 0xFFFF0048, 0xFFFF0B6D, 0xFFFF3091, 0xFFFF54B6, 0xFFFF79DA, 0xFFFF9DFF,
	0xFFBB0000, 0xFFE00000, 0xFFFF0023, 0xFFFF1447, 0xFFFF396C, 0xFFFF5D90, 0xFFFF82B5, 0xFFFFA6D9,
	0xFFB00000, 0xFFD50000, 0xFFF90000, 0xFFFF2124, 0xFFFF4548, 0xFFFF6A6C, 0xFFFF8E91, 0xFFFFB3B5,
	0xFF9F0000, 0xFFC30000, 0xFFE70C00, 0xFFFF3003, 0xFFFF5527, 0xFFFF794B, 0xFFFF9E70, 0xFFFFC294,
	0xFF870000, 0xFFAB0000, 0xFFD01E00, 0xFFF44200, 0xFFFF670A, 0xFFFF8B2E, 0xFFFFAF53, 0xFFFFD477,
	0xFF6A0000, 0xFF8E0D00, 0xFFB33100, 0xFFD75600, 0xFFFB7A00, 0xFFFF9E17, 0xFFFFC33B, 0xFFFFE75F,
	0xFF490000, 0xFF6D2100, 0xFF924500, 0xFFB66A00, 0xFFDA8E00, 0xFFFFB305, 0xFFFFD729, 0xFFFFFC4E,
	0xFF251100, 0xFF493500, 0xFF6E5A00, 0xFF927E00, 0xFFB7A300, 0xFFDBC700, 0xFFFFEB1E, 0xFFFFFF43,
	0xFF002500, 0xFF244900, 0xFF486D00, 0xFF6D9200, 0xFF91B600, 0xFFB6DB00, 0xFFDAFF1B, 0xFFFFFF3F,
	0xFF003700, 0xFF005B00, 0xFF238000, 0xFF47A400, 0xFF6CC900, 0xFF90ED00, 0xFFB5FF1E, 0xFFD9FF43,
	0xFF004700, 0xFF006C00, 0xFF009000, 0xFF24B400, 0xFF48D900, 0xFF6CFD05, 0xFF91FF29, 0xFFB5FF4E,
	0xFF005500, 0xFF007900, 0xFF009D00, 0xFF03C200, 0xFF27E600, 0xFF4BFF17, 0xFF70FF3B, 0xFF94FF5F,
	0xFF005F00, 0xFF008300, 0xFF00A800, 0xFF00CC00, 0xFF0AF00A, 0xFF2EFF2E, 0xFF53FF53, 0xFF77FF77,
	0xFF006500, 0xFF008A00, 0xFF00AE00, 0xFF00D203, 0xFF00F727, 0xFF17FF4B, 0xFF3BFF70, 0xFF5FFF94,
	0xFF006800, 0xFF008C00, 0xFF00B100, 0xFF00D524, 0xFF00F948, 0xFF05FF6C, 0xFF29FF91, 0xFF4EFFB5,
	0xFF006600, 0xFF008B00, 0xFF00AF23, 0xFF00D447, 0xFF00F86C, 0xFF00FF90, 0xFF1EFFB5, 0xFF43FFD9,
	0xFF006100, 0xFF008524, 0xFF00AA48, 0xFF00CE6D, 0xFF00F391, 0xFF00FFB6, 0xFF1BFFDA, 0xFF3FFFFE,
	0xFF005825, 0xFF007C49, 0xFF00A16E, 0xFF00C592, 0xFF00EAB7, 0xFF00FFDB, 0xFF1EFFFF, 0xFF43FFFF,
	0xFF004B49, 0xFF00706D, 0xFF009492, 0xFF00B9B6, 0xFF00DDDA, 0xFF05FFFF, 0xFF29FFFF, 0xFF4EFFFF,
	0xFF003C6A, 0xFF00608E, 0xFF0085B3, 0xFF00A9D7, 0xFF00CEFB, 0xFF17F2FF, 0xFF3BFFFF, 0xFF5FFFFF,
	0xFF002A87, 0xFF004FAB, 0xFF0073D0, 0xFF0097F4, 0xFF0ABCFF, 0xFF2EE0FF, 0xFF53FFFF, 0xFF77FFFF,
	0xFF00179F, 0xFF003BC3, 0xFF0060E7, 0xFF0384FF, 0xFF27A8FF, 0xFF4BCDFF, 0xFF70F1FF, 0xFF94FFFF,
	0xFF0002B0, 0xFF0027D5, 0xFF004BF9, 0xFF2470FF, 0xFF4894FF, 0xFF6CB9FF, 0xFF91DDFF, 0xFFB5FFFF,
	0xFF0000BB, 0xFF0013E0, 0xFF2337FF, 0xFF475BFF, 0xFF6C80FF, 0xFF90A4FF, 0xFFB5C9FF, 0xFFD9EDFF,
}

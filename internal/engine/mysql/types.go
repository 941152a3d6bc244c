package mysql

// fieldTypes maps protocol column type codes to their names. Codes that
// alias (CHAR and TINY share 1, ENUM and INTERVAL share 247) resolve to the
// alphabetically later name.
var fieldTypes = map[int]string{
	0:   "DECIMAL",
	1:   "TINY",
	2:   "SHORT",
	3:   "LONG",
	4:   "FLOAT",
	5:   "DOUBLE",
	6:   "NULL",
	7:   "TIMESTAMP",
	8:   "LONGLONG",
	9:   "INT24",
	10:  "DATE",
	11:  "TIME",
	12:  "DATETIME",
	13:  "YEAR",
	14:  "NEWDATE",
	15:  "VARCHAR",
	16:  "BIT",
	245: "JSON",
	246: "NEWDECIMAL",
	247: "INTERVAL",
	248: "SET",
	249: "TINY_BLOB",
	250: "MEDIUM_BLOB",
	251: "LONG_BLOB",
	252: "BLOB",
	253: "VAR_STRING",
	254: "STRING",
	255: "GEOMETRY",
}

// Datatype returns the name of a MySQL protocol field type code, as found
// in result-set column metadata.
func Datatype(typeCode int) (string, bool) {
	name, ok := fieldTypes[typeCode]
	return name, ok
}

package snapshot

// Permission and type bits of a git tree entry mode, as in stat(2)
const (
	modeType   = 0170000
	modeSocket = 0140000
	modeLink   = 0120000
	modeFile   = 0100000
	modeBlock  = 0060000
	modeDir    = 0040000
	modeChar   = 0020000
	modeFifo   = 0010000

	modeSetuid = 04000
	modeSetgid = 02000
	modeSticky = 01000
)

// FileMode renders a raw mode the way ls -l does, e.g. "-rw-r--r--"
func FileMode(mode uint32) string {
	buf := []byte("----------")

	switch mode & modeType {
	case modeFile:
		buf[0] = '-'
	case modeBlock:
		buf[0] = 'b'
	case modeChar:
		buf[0] = 'c'
	case modeDir:
		buf[0] = 'd'
	case modeFifo:
		buf[0] = 'p'
	case modeLink:
		buf[0] = 'l'
	case modeSocket:
		buf[0] = 's'
	default:
		buf[0] = '?'
	}

	const rwx = "rwxrwxrwx"
	for i := 0; i < 9; i++ {
		if mode&(1<<uint(8-i)) != 0 {
			buf[i+1] = rwx[i]
		}
	}

	if mode&modeSetuid != 0 {
		buf[3] = modeLetter(buf[3], 's', 'S')
	}
	if mode&modeSetgid != 0 {
		buf[6] = modeLetter(buf[6], 's', 'S')
	}
	if mode&modeSticky != 0 {
		buf[9] = modeLetter(buf[9], 't', 'T')
	}

	return string(buf)
}

func modeLetter(current, exec, noExec byte) byte {
	if current == 'x' {
		return exec
	}
	return noExec
}

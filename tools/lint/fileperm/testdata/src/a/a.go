package a

import "os"

const privatePerm = 0o600

func write(data []byte) {
	_ = os.WriteFile("a.txt", data, 0o600) // want `use a file permission constant like 'fileutil.ReadWriteUserPermission' instead of hardcoded '0o600' in WriteFile`
	_ = os.WriteFile("b.txt", data, 0600)  // want `use a file permission constant like 'fileutil.ReadWriteUserPermission' instead of hardcoded '0600' in WriteFile`
	_ = os.MkdirAll("dir", 0o755)          // want `use a file permission constant like 'fileutil.ReadWriteExecuteUserReadExecuteOthers' instead of hardcoded '0o755' in MkdirAll`
	_ = os.Chmod("a.txt", 0o644)
	_ = os.WriteFile("c.txt", data, privatePerm)
	_ = os.Remove("0o600")
}

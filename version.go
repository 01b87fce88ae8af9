package mar

// Version is the interpreter release string reported by "mar version".
const Version = "0.1.0"

package config

// DefaultDataPath is the default path for the library data file
const DefaultDataPath = "./bookflow_data.json"
